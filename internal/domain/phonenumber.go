package domain

import "time"

// PhoneNumber holds the normalized phone data for a user, one record per user.
// Created once during registration; there is no update or delete path.
type PhoneNumber struct {
	PhoneNumberID       string    `json:"id" dynamodbav:"phone_number_id"`
	UserID              string    `json:"user_id" dynamodbav:"user_id"`
	ISOCode             string    `json:"iso_code" dynamodbav:"iso_code"`
	InternationalNumber string    `json:"international_number" dynamodbav:"international_number"`
	CountryCode         string    `json:"country_code" dynamodbav:"country_code"`
	CreatedAt           time.Time `json:"created" dynamodbav:"created_at"`
}
