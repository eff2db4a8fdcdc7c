package qr

import (
	"encoding/base64"
	"fmt"

	"github.com/skip2/go-qrcode"
)

// BuildPayload produces the plaintext encoded into a booking's QR code.
// Scanner apps parse this exact format, so every field position and the
// two-decimal fare rendering are part of the contract.
func BuildPayload(reference, passengerName, busNumber, seatNumber, scheduleDate string, fare float64) string {
	return fmt.Sprintf("BOOKING:%s|PASSENGER:%s|BUS:%s|SEAT:%s|DATE:%s|FARE:%.2f",
		reference, passengerName, busNumber, seatNumber, scheduleDate, fare)
}

// GenerateDataURL renders the payload as a 256px PNG wrapped in a
// data: URL, ready to drop into an <img> tag.
func GenerateDataURL(payload string) (string, error) {
	png, err := qrcode.Encode(payload, qrcode.Medium, 256)
	if err != nil {
		return "", fmt.Errorf("failed to encode QR code: %w", err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}
