package handler

import (
    "testing"
    "time"

    "github.com/Nihihitik/car-dealership/internal/model"
)

func fieldNames(errs []fieldError) map[string]bool {
    out := map[string]bool{}
    for _, e := range errs {
        out[e.Field] = true
    }
    return out
}

func TestValidateRegister(t *testing.T) {
    ok := registerReq{Email: "A@B.com ", Password: "pw123456", FullName: "Ann"}
    if errs := validateRegister(&ok); len(errs) != 0 {
        t.Fatalf("valid request rejected: %v", errs)
    }
    if ok.Email != "a@b.com" {
        t.Fatalf("email not normalized: %q", ok.Email)
    }

    bad := registerReq{Email: "not-an-email", Password: "short", FullName: "  "}
    fields := fieldNames(validateRegister(&bad))
    for _, want := range []string{"email", "password", "full_name"} {
        if !fields[want] {
            t.Errorf("missing field error for %s: %v", want, fields)
        }
    }
}

func TestValidateCar(t *testing.T) {
    ok := carReq{
        Brand: "Toyota", Model: "Corolla", Year: 2020, Price: 18000,
        Transmission: model.TransmissionAutomatic, Condition: model.ConditionUsed,
    }
    if errs := validateCar(&ok); len(errs) != 0 {
        t.Fatalf("valid car rejected: %v", errs)
    }

    bad := carReq{
        Brand: "", Model: "", Year: 1800, Price: 0, Mileage: -1,
        Transmission: "cvt", Condition: "mint",
    }
    fields := fieldNames(validateCar(&bad))
    for _, want := range []string{"brand", "model", "year", "price", "mileage", "transmission", "condition"} {
        if !fields[want] {
            t.Errorf("missing field error for %s: %v", want, fields)
        }
    }

    future := ok
    future.Year = time.Now().Year() + 2
    if errs := validateCar(&future); len(errs) == 0 {
        t.Error("far-future year accepted")
    }
}
