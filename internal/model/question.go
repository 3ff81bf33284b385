package model

import "time"

// Question is a buyer's question about a listing, optionally answered by
// the seller.  Answer is nil until the seller responds.
//
// Fields:
//  ID        – primary key identifier.
//  CarID     – listing the question is about.
//  BuyerID   – user who asked.
//  Question  – question text.
//  Answer    – seller's answer (nullable).
//  CreatedAt – creation timestamp.
type Question struct {
    ID        uint64    // questions.id
    CarID     uint64    // questions.car_id
    BuyerID   uint64    // questions.buyer_id
    Question  string    // questions.question
    Answer    *string   // questions.answer (nullable)
    CreatedAt time.Time // questions.created_at
}
