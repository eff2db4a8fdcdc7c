package booking_api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"smartfare/internal/booking"
	"smartfare/internal/logger"
	"smartfare/internal/qr"
	"smartfare/internal/utils"
)

type Handler struct {
	BookingService *booking.BookingService
	Logger         *logger.Logger
}

type CreateBookingRequest struct {
	PassengerName  string `json:"passengerName"`
	PassengerPhone string `json:"passengerPhone"`
	ScheduleID     int64  `json:"scheduleId"`
	SeatNumber     string `json:"seatNumber"`
}

type PaymentRequest struct {
	TransactionID string `json:"transactionId"`
}

type QRCodeResponse struct {
	QRCode string `json:"qrCode"`
	QRData string `json:"qrData"`
}

func (h *Handler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.Error("API", fmt.Sprintf("CreateBooking: failed to decode request body: %v", err))
		utils.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	h.Logger.Info("API", fmt.Sprintf("CreateBooking: schedule=%d seat=%s phone=%s", req.ScheduleID, req.SeatNumber, req.PassengerPhone))

	b, err := h.BookingService.Reserve(req.PassengerName, req.PassengerPhone, req.ScheduleID, req.SeatNumber)
	if err != nil {
		h.writeServiceError(w, "CreateBooking", err)
		return
	}

	h.Logger.LogBooking("CREATED", b.BookingReference, fmt.Sprintf("seat %s on schedule %d", b.SeatNumber, req.ScheduleID))
	utils.WriteJSON(w, http.StatusCreated, b)
}

func (h *Handler) GetBooking(w http.ResponseWriter, r *http.Request) {
	reference := chi.URLParam(r, "bookingReference")

	b, err := h.BookingService.GetBookingByReference(reference)
	if err != nil {
		h.writeServiceError(w, "GetBooking", err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, b)
}

func (h *Handler) GetBookingsByPhone(w http.ResponseWriter, r *http.Request) {
	phone := chi.URLParam(r, "phone")

	bookings, err := h.BookingService.GetBookingsByPhone(phone)
	if err != nil {
		h.writeServiceError(w, "GetBookingsByPhone", err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, bookings)
}

func (h *Handler) UpdatePayment(w http.ResponseWriter, r *http.Request) {
	reference := chi.URLParam(r, "bookingReference")

	var req PaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.Error("API", fmt.Sprintf("UpdatePayment: failed to decode request body: %v", err))
		utils.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	b, err := h.BookingService.UpdatePaymentStatus(reference, req.TransactionID)
	if err != nil {
		h.writeServiceError(w, "UpdatePayment", err)
		return
	}

	h.Logger.LogBooking("PAYMENT", reference, "payment marked completed")
	utils.WriteJSON(w, http.StatusOK, b)
}

func (h *Handler) GetQRCode(w http.ResponseWriter, r *http.Request) {
	reference := chi.URLParam(r, "bookingReference")

	b, err := h.BookingService.GetBookingByReference(reference)
	if err != nil {
		h.writeServiceError(w, "GetQRCode", err)
		return
	}

	dataURL, err := qr.GenerateDataURL(b.QRCodeData)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("GetQRCode: failed to render QR for %s: %v", reference, err))
		utils.WriteError(w, http.StatusInternalServerError, "failed to render QR code")
		return
	}

	utils.WriteJSON(w, http.StatusOK, QRCodeResponse{
		QRCode: dataURL,
		QRData: b.QRCodeData,
	})
}

// writeServiceError maps the booking error kinds onto HTTP classes and
// keeps internal detail out of 500 responses.
func (h *Handler) writeServiceError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, booking.ErrValidation):
		h.Logger.Warn("API", fmt.Sprintf("%s: %v", op, err))
		utils.WriteError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, booking.ErrScheduleNotFound), errors.Is(err, booking.ErrBookingNotFound):
		h.Logger.Warn("API", fmt.Sprintf("%s: %v", op, err))
		utils.WriteError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, booking.ErrNoSeatsAvailable), errors.Is(err, booking.ErrSeatAlreadyBooked):
		h.Logger.Warn("API", fmt.Sprintf("%s: %v", op, err))
		utils.WriteError(w, http.StatusConflict, err.Error())
	default:
		h.Logger.Error("API", fmt.Sprintf("%s: %v", op, err))
		utils.WriteError(w, http.StatusInternalServerError, "internal server error")
	}
}
