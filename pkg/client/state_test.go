package client_test

import (
    "testing"

    "github.com/Nihihitik/car-dealership/pkg/client"
)

func TestCarTransitionRules(t *testing.T) {
    cases := []struct {
        from, to string
        ok       bool
    }{
        {client.CarActive, client.CarInactive, true},
        {client.CarActive, client.CarSold, true},
        {client.CarInactive, client.CarActive, true},
        {client.CarInactive, client.CarSold, true},
        {client.CarSold, client.CarActive, false},
        {client.CarSold, client.CarInactive, false},
        {client.CarActive, client.CarActive, false},
        {"bogus", client.CarSold, false},
    }
    for _, tc := range cases {
        if got := client.CanCarTransition(tc.from, tc.to); got != tc.ok {
            t.Errorf("CanCarTransition(%q, %q) = %v, want %v", tc.from, tc.to, got, tc.ok)
        }
    }
}

func TestOrderTransitionRules(t *testing.T) {
    cases := []struct {
        from, to string
        ok       bool
    }{
        {client.OrderPending, client.OrderApproved, true},
        {client.OrderPending, client.OrderRejected, true},
        {client.OrderApproved, client.OrderCompleted, true},
        {client.OrderApproved, client.OrderRejected, false},
        {client.OrderRejected, client.OrderApproved, false},
        {client.OrderCompleted, client.OrderPending, false},
    }
    for _, tc := range cases {
        if got := client.CanOrderTransition(tc.from, tc.to); got != tc.ok {
            t.Errorf("CanOrderTransition(%q, %q) = %v, want %v", tc.from, tc.to, got, tc.ok)
        }
    }
}

func TestPurchasable(t *testing.T) {
    if !client.Purchasable(client.CarActive) {
        t.Error("active listing should be purchasable")
    }
    if client.Purchasable(client.CarInactive) || client.Purchasable(client.CarSold) {
        t.Error("only active listings are purchasable")
    }
}
