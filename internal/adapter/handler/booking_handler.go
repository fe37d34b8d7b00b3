package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/srgjo27/rail_ticket/internal/core/domain"
	"github.com/srgjo27/rail_ticket/internal/core/services"
)

type ReservationUseCase interface {
	CreateReservation(ctx context.Context, req services.CreateReservationRequest) (*services.CreateReservationResponse, error)
	ListReservations(ctx context.Context, username string, limit int) ([]domain.ReservationAttempt, error)
}

type BookingHandler struct {
	svc ReservationUseCase
}

func NewBookingHandler(svc ReservationUseCase) *BookingHandler {
	return &BookingHandler{svc: svc}
}

type passengerCounts struct {
	Adult  int `json:"adult"`
	Child  int `json:"child"`
	Senior int `json:"senior"`
}

type cardRequest struct {
	Number           string `json:"number" binding:"required"`
	Password         string `json:"password" binding:"required"`
	ValidationNumber string `json:"validation_number" binding:"required"`
	Expire           string `json:"expire" binding:"required"`
	IsCorporate      bool   `json:"is_corporate"`
}

type createReservationRequest struct {
	Username       string          `json:"username" binding:"required"`
	Password       string          `json:"password" binding:"required"`
	Departure      string          `json:"departure" binding:"required"`
	Arrival        string          `json:"arrival" binding:"required"`
	Date           string          `json:"date" binding:"required"`
	Time           string          `json:"time"`
	Passengers     passengerCounts `json:"passengers"`
	TrainType      string          `json:"train_type" binding:"required"`
	SeatPreference string          `json:"seat_preference"`
	TrainNumber    string          `json:"train_number"`
	Card           *cardRequest    `json:"card"`
}

type attemptResponse struct {
	ID                string     `json:"id"`
	TrainType         string     `json:"train_type"`
	TrainNumber       string     `json:"train_number"`
	Departure         string     `json:"departure"`
	Arrival           string     `json:"arrival"`
	DepartureDate     string     `json:"departure_date"`
	DepartureTime     string     `json:"departure_time"`
	PassengerCount    int        `json:"passenger_count"`
	SeatPreference    string     `json:"seat_preference,omitempty"`
	ReservationNumber string     `json:"reservation_number,omitempty"`
	Status            string     `json:"status"`
	Message           string     `json:"message,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	PaymentDeadline   *time.Time `json:"payment_deadline,omitempty"`
	PaidAt            *time.Time `json:"paid_at,omitempty"`
}

func (r createReservationRequest) toService() (services.CreateReservationRequest, error) {
	date, err := time.ParseInLocation("2006-01-02", r.Date, domain.KST)
	if err != nil {
		return services.CreateReservationRequest{}, fmt.Errorf("%w: date must be YYYY-MM-DD", domain.ErrInvalidRequest)
	}

	trainType, err := domain.ParseTrainType(r.TrainType)
	if err != nil {
		return services.CreateReservationRequest{}, err
	}

	pref, err := domain.ParseSeatPreference(r.SeatPreference)
	if err != nil {
		return services.CreateReservationRequest{}, err
	}

	passengers, err := r.Passengers.toDomain()
	if err != nil {
		return services.CreateReservationRequest{}, err
	}

	depTime := r.Time
	if depTime == "" {
		depTime = "000000"
	}

	out := services.CreateReservationRequest{
		Username: r.Username,
		Password: r.Password,
		Request: domain.ReservationRequest{
			DepartureStation: r.Departure,
			ArrivalStation:   r.Arrival,
			DepartureDate:    date,
			DepartureTime:    depTime,
			Passengers:       passengers,
			TrainType:        trainType,
			SeatPreference:   pref,
		},
		TrainNumber: r.TrainNumber,
	}

	if r.Card != nil {
		out.Card = &domain.CreditCard{
			Number:           r.Card.Number,
			Password:         r.Card.Password,
			ValidationNumber: r.Card.ValidationNumber,
			Expire:           r.Card.Expire,
			IsCorporate:      r.Card.IsCorporate,
		}
	}

	return out, nil
}

func (p passengerCounts) toDomain() ([]domain.Passenger, error) {
	if p.Adult < 0 || p.Child < 0 || p.Senior < 0 {
		return nil, fmt.Errorf("%w: passenger counts must not be negative", domain.ErrInvalidRequest)
	}

	var out []domain.Passenger
	if p.Adult > 0 {
		out = append(out, domain.Passenger{Type: domain.PassengerAdult, Count: p.Adult})
	}
	if p.Child > 0 {
		out = append(out, domain.Passenger{Type: domain.PassengerChild, Count: p.Child})
	}
	if p.Senior > 0 {
		out = append(out, domain.Passenger{Type: domain.PassengerSenior, Count: p.Senior})
	}
	return out, nil
}

func toAttemptResponse(a domain.ReservationAttempt) attemptResponse {
	resp := attemptResponse{
		ID:                a.ID.String(),
		TrainType:         string(a.TrainType),
		TrainNumber:       a.TrainNumber,
		Departure:         a.DepartureStation,
		Arrival:           a.ArrivalStation,
		DepartureDate:     a.DepartureDate,
		DepartureTime:     a.DepartureTime,
		PassengerCount:    a.PassengerCount,
		SeatPreference:    string(a.SeatPreference),
		ReservationNumber: a.ReservationNumber,
		Status:            string(a.Status),
		Message:           a.Message,
		CreatedAt:         a.CreatedAt,
		PaidAt:            a.PaidAt,
	}
	if !a.PaymentDeadline.IsZero() {
		deadline := a.PaymentDeadline
		resp.PaymentDeadline = &deadline
	}
	return resp
}

func (h *BookingHandler) CreateReservation(c *gin.Context) {
	var body createReservationRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json body"})
		return
	}

	req, err := body.toService()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.svc.CreateReservation(c.Request.Context(), req)
	if err != nil {
		status := statusFor(err)
		if status == http.StatusInternalServerError {
			logrus.WithError(err).WithField("username", req.Username).Error("reservation failed")
			c.JSON(status, gin.H{"error": "internal server error"})
			return
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *BookingHandler) ListReservations(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a number"})
			return
		}
		limit = n
	}

	attempts, err := h.svc.ListReservations(c.Request.Context(), c.Query("username"), limit)
	if err != nil {
		status := statusFor(err)
		if status == http.StatusInternalServerError {
			logrus.WithError(err).Error("list reservations failed")
			c.JSON(status, gin.H{"error": "internal server error"})
			return
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	out := make([]attemptResponse, 0, len(attempts))
	for _, a := range attempts {
		out = append(out, toAttemptResponse(a))
	}

	c.JSON(http.StatusOK, gin.H{"reservations": out})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidRequest):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrLoginFailed):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrTrainNotFound), errors.Is(err, domain.ErrAttemptNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrSessionBusy), errors.Is(err, domain.ErrReservationFailed):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
