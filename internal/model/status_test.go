package model

import "testing"

func TestCarTransitions(t *testing.T) {
    cases := []struct {
        from, to CarStatus
        ok       bool
    }{
        {CarActive, CarInactive, true},
        {CarActive, CarSold, true},
        {CarInactive, CarActive, true},
        {CarInactive, CarSold, true},
        {CarSold, CarActive, false},
        {CarSold, CarInactive, false},
        {CarActive, CarActive, false},
        {CarActive, CarStatus("deleted"), false},
    }
    for _, c := range cases {
        if got := CanCarTransition(c.from, c.to); got != c.ok {
            t.Errorf("CanCarTransition(%s, %s) = %v, want %v", c.from, c.to, got, c.ok)
        }
    }
}

func TestOrderTransitions(t *testing.T) {
    cases := []struct {
        from, to OrderStatus
        ok       bool
    }{
        {OrderPending, OrderApproved, true},
        {OrderPending, OrderRejected, true},
        {OrderPending, OrderCompleted, false},
        {OrderApproved, OrderCompleted, true},
        {OrderApproved, OrderRejected, false},
        {OrderRejected, OrderPending, false},
        {OrderCompleted, OrderApproved, false},
    }
    for _, c := range cases {
        if got := CanOrderTransition(c.from, c.to); got != c.ok {
            t.Errorf("CanOrderTransition(%s, %s) = %v, want %v", c.from, c.to, got, c.ok)
        }
    }
}

func TestCheckCarTransitionErrors(t *testing.T) {
    if err := CheckCarTransition(CarSold, CarActive); err == nil {
        t.Fatal("expected error leaving sold")
    }
    if err := CheckCarTransition(CarActive, CarStatus("scrapped")); err == nil {
        t.Fatal("expected error for unknown status")
    }
    if err := CheckCarTransition(CarInactive, CarActive); err != nil {
        t.Fatalf("unexpected error: %v", err)
    }
}

func TestPurchasable(t *testing.T) {
    if !Purchasable(CarActive) {
        t.Fatal("active listings must be purchasable")
    }
    if Purchasable(CarInactive) || Purchasable(CarSold) {
        t.Fatal("only active listings are purchasable")
    }
}
