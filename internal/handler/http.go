package handler

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"reflect"
	"strings"

	"github.com/SergeyBogomolovv/marketplace-core/internal/entities"
	"github.com/SergeyBogomolovv/marketplace-core/internal/gateway"
	"github.com/SergeyBogomolovv/marketplace-core/internal/service"
	"github.com/SergeyBogomolovv/marketplace-core/pkg/utils"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

type OrderUsecase interface {
	CreateOrder(ctx context.Context, in service.CreateOrderInput) (entities.Order, error)
	GetOrder(ctx context.Context, id string) (entities.Order, error)
	CancelOrder(ctx context.Context, id, reason string) (entities.Order, error)
	ApplyCouponToOrder(ctx context.Context, orderID, userID, code string) (entities.Order, error)
}

type CouponUsecase interface {
	CreateCoupon(ctx context.Context, in service.CreateCouponInput) (entities.Coupon, error)
	GetCoupon(ctx context.Context, code string) (entities.Coupon, error)
	ValidateCoupon(ctx context.Context, in service.ValidateCouponInput) (entities.CouponValidation, error)
}

type PaymentUsecase interface {
	CreatePayment(ctx context.Context, in service.CreatePaymentInput) (entities.Payment, error)
	GetPayment(ctx context.Context, id string) (entities.Payment, error)
	ProcessPayment(ctx context.Context, id string) (entities.Payment, error)
	CancelPayment(ctx context.Context, id string) (entities.Payment, error)
	HandleCallback(ctx context.Context, params map[string]string) (entities.Payment, error)
}

type ShippingUsecase interface {
	CreateShipping(ctx context.Context, in service.CreateShippingInput) (entities.Shipping, error)
	GetShipping(ctx context.Context, id string) (service.ShippingDetails, error)
	UpdateShippingStatus(ctx context.Context, id string, status entities.ShippingStatus, notes string) (entities.Shipping, error)
}

type HTTPHandler struct {
	logger    *slog.Logger
	validate  *validator.Validate
	orders    OrderUsecase
	coupons   CouponUsecase
	payments  PaymentUsecase
	shippings ShippingUsecase
}

func NewHTTPHandler(logger *slog.Logger, orders OrderUsecase, coupons CouponUsecase, payments PaymentUsecase, shippings ShippingUsecase) *HTTPHandler {
	return &HTTPHandler{
		logger:    logger.With(slog.String("handler", "http")),
		validate:  newValidator(),
		orders:    orders,
		coupons:   coupons,
		payments:  payments,
		shippings: shippings,
	}
}

// newValidator называет поля по json тегам, как их видит клиент.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func (h *HTTPHandler) Init(r chi.Router) {
	r.Route("/orders", func(r chi.Router) {
		r.Post("/", h.CreateOrder)
		r.Get("/{id}", h.GetOrder)
		r.Post("/{id}/cancel", h.CancelOrder)
		r.Post("/{id}/coupon", h.ApplyCoupon)
	})

	r.Route("/coupons", func(r chi.Router) {
		r.Post("/", h.CreateCoupon)
		r.Post("/validate", h.ValidateCoupon)
		r.Get("/{code}", h.GetCoupon)
	})

	r.Route("/payments", func(r chi.Router) {
		r.Post("/", h.CreatePayment)
		r.Get("/vnpay/callback", h.PaymentCallback)
		r.Get("/{id}", h.GetPayment)
		r.Post("/{id}/process", h.ProcessPayment)
		r.Post("/{id}/cancel", h.CancelPayment)
	})

	r.Route("/shippings", func(r chi.Router) {
		r.Post("/", h.CreateShipping)
		r.Get("/{id}", h.GetShipping)
		r.Post("/{id}/status", h.UpdateShippingStatus)
	})
}

// CouponErrorResponse - отказ в применении купона с кодом причины
type CouponErrorResponse struct {
	Message string `json:"message"`
	Reason  string `json:"reason"`
}

// errorStatus переводит класс ошибки в HTTP статус.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, entities.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, entities.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, entities.ErrInvalidSignature):
		return http.StatusBadRequest
	case errors.Is(err, entities.ErrExpired):
		return http.StatusGone
	case errors.Is(err, entities.ErrInvalidState), errors.Is(err, entities.ErrLimitExceeded):
		return http.StatusUnprocessableEntity
	case errors.Is(err, entities.ErrInvalidInput):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func (h *HTTPHandler) writeError(ctx context.Context, w http.ResponseWriter, err error, msg string, attrs ...any) {
	code := errorStatus(err)
	if code == http.StatusInternalServerError {
		h.logger.ErrorContext(ctx, msg, append(attrs, slog.Any("error", err))...)
		utils.WriteError(w, "internal server error", code)
		return
	}

	if reason := entities.ReasonOf(err); reason != "" {
		utils.WriteJSON(w, CouponErrorResponse{Message: err.Error(), Reason: reason}, code)
		return
	}
	utils.WriteError(w, err.Error(), code)
}

// decode читает тело и валидирует его. При ошибке ответ уже записан.
func (h *HTTPHandler) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := utils.DecodeBody(r, v); err != nil {
		utils.WriteError(w, "invalid request body", http.StatusBadRequest)
		return false
	}
	if err := h.validate.Struct(v); err != nil {
		utils.WriteValidationError(w, err)
		return false
	}
	return true
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// CreateOrder создает заказ.
// @Summary      Создать заказ
// @Tags         orders
// @Param        request  body      CreateOrderRequest  true  "Заказ"
// @Success      201  {object}  Order
// @Failure      400  {object}  utils.ValidationErrorResponse "Ошибка валидации"
// @Failure      500  {object}  utils.ErrorResponse "Внутренняя ошибка сервера"
// @Router       /orders [post]
func (h *HTTPHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req CreateOrderRequest
	if !h.decode(w, r, &req) {
		return
	}

	order, err := h.orders.CreateOrder(r.Context(), req.ToInput())
	if err != nil {
		h.writeError(r.Context(), w, err, "failed to create order")
		return
	}
	utils.WriteJSON(w, OrderEntityToJSON(order), http.StatusCreated)
}

// GetOrder возвращает заказ по ID.
// @Summary      Получить заказ
// @Tags         orders
// @Param        id   path      string  true  "Идентификатор заказа"
// @Success      200  {object}  Order
// @Failure      404  {object}  utils.ErrorResponse "Заказ не найден"
// @Failure      500  {object}  utils.ErrorResponse "Внутренняя ошибка сервера"
// @Router       /orders/{id} [get]
func (h *HTTPHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	order, err := h.orders.GetOrder(r.Context(), id)
	if err != nil {
		h.writeError(r.Context(), w, err, "failed to get order", slog.String("order_id", id))
		return
	}
	utils.WriteJSON(w, OrderEntityToJSON(order), http.StatusOK)
}

// CancelOrder отменяет заказ до отгрузки.
// @Summary      Отменить заказ
// @Tags         orders
// @Param        id       path      string              true  "Идентификатор заказа"
// @Param        request  body      CancelOrderRequest  true  "Причина"
// @Success      200  {object}  Order
// @Failure      422  {object}  utils.ErrorResponse "Заказ уже отгружен"
// @Router       /orders/{id}/cancel [post]
func (h *HTTPHandler) CancelOrder(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req CancelOrderRequest
	if !h.decode(w, r, &req) {
		return
	}

	order, err := h.orders.CancelOrder(r.Context(), id, req.Reason)
	if err != nil {
		h.writeError(r.Context(), w, err, "failed to cancel order", slog.String("order_id", id))
		return
	}
	utils.WriteJSON(w, OrderEntityToJSON(order), http.StatusOK)
}

// ApplyCoupon применяет купон к заказу.
// @Summary      Применить купон к заказу
// @Tags         orders
// @Param        id       path      string              true  "Идентификатор заказа"
// @Param        request  body      ApplyCouponRequest  true  "Купон"
// @Success      200  {object}  Order
// @Failure      422  {object}  CouponErrorResponse "Купон не применим"
// @Router       /orders/{id}/coupon [post]
func (h *HTTPHandler) ApplyCoupon(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req ApplyCouponRequest
	if !h.decode(w, r, &req) {
		return
	}

	order, err := h.orders.ApplyCouponToOrder(r.Context(), id, req.UserID, req.Code)
	if err != nil {
		h.writeError(r.Context(), w, err, "failed to apply coupon", slog.String("order_id", id))
		return
	}
	utils.WriteJSON(w, OrderEntityToJSON(order), http.StatusOK)
}

// CreateCoupon создает купон.
// @Summary      Создать купон
// @Tags         coupons
// @Param        request  body      CreateCouponRequest  true  "Купон"
// @Success      201  {object}  Coupon
// @Failure      409  {object}  utils.ErrorResponse "Код уже существует"
// @Router       /coupons [post]
func (h *HTTPHandler) CreateCoupon(w http.ResponseWriter, r *http.Request) {
	var req CreateCouponRequest
	if !h.decode(w, r, &req) {
		return
	}

	coupon, err := h.coupons.CreateCoupon(r.Context(), req.ToInput())
	if err != nil {
		h.writeError(r.Context(), w, err, "failed to create coupon")
		return
	}
	utils.WriteJSON(w, CouponEntityToJSON(coupon), http.StatusCreated)
}

// GetCoupon возвращает купон по коду.
// @Summary      Получить купон
// @Tags         coupons
// @Param        code  path      string  true  "Код купона"
// @Success      200  {object}  Coupon
// @Failure      404  {object}  utils.ErrorResponse "Купон не найден"
// @Router       /coupons/{code} [get]
func (h *HTTPHandler) GetCoupon(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	coupon, err := h.coupons.GetCoupon(r.Context(), code)
	if err != nil {
		h.writeError(r.Context(), w, err, "failed to get coupon", slog.String("code", code))
		return
	}
	utils.WriteJSON(w, CouponEntityToJSON(coupon), http.StatusOK)
}

// ValidateCoupon проверяет купон без применения.
// @Summary      Проверить купон
// @Tags         coupons
// @Param        request  body      ValidateCouponRequest  true  "Контекст заказа"
// @Success      200  {object}  CouponValidation
// @Failure      404  {object}  utils.ErrorResponse "Купон не найден"
// @Router       /coupons/validate [post]
func (h *HTTPHandler) ValidateCoupon(w http.ResponseWriter, r *http.Request) {
	var req ValidateCouponRequest
	if !h.decode(w, r, &req) {
		return
	}

	res, err := h.coupons.ValidateCoupon(r.Context(), service.ValidateCouponInput{
		Code:        req.Code,
		UserID:      req.UserID,
		OrderAmount: req.OrderAmount,
	})
	if err != nil {
		h.writeError(r.Context(), w, err, "failed to validate coupon", slog.String("code", req.Code))
		return
	}
	utils.WriteJSON(w, CouponValidationToJSON(res), http.StatusOK)
}

// CreatePayment создает платеж по заказу.
// @Summary      Создать платеж
// @Tags         payments
// @Param        request  body      CreatePaymentRequest  true  "Платеж"
// @Success      201  {object}  Payment
// @Failure      409  {object}  utils.ErrorResponse "Платеж уже существует"
// @Router       /payments [post]
func (h *HTTPHandler) CreatePayment(w http.ResponseWriter, r *http.Request) {
	var req CreatePaymentRequest
	if !h.decode(w, r, &req) {
		return
	}

	payment, err := h.payments.CreatePayment(r.Context(), req.ToInput(clientIP(r)))
	if err != nil {
		h.writeError(r.Context(), w, err, "failed to create payment", slog.String("order_id", req.OrderID))
		return
	}
	utils.WriteJSON(w, PaymentEntityToJSON(payment), http.StatusCreated)
}

// GetPayment возвращает платеж.
// @Summary      Получить платеж
// @Tags         payments
// @Param        id   path      string  true  "Идентификатор платежа"
// @Success      200  {object}  Payment
// @Failure      404  {object}  utils.ErrorResponse "Платеж не найден"
// @Router       /payments/{id} [get]
func (h *HTTPHandler) GetPayment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	payment, err := h.payments.GetPayment(r.Context(), id)
	if err != nil {
		h.writeError(r.Context(), w, err, "failed to get payment", slog.String("payment_id", id))
		return
	}
	utils.WriteJSON(w, PaymentEntityToJSON(payment), http.StatusOK)
}

// ProcessPayment запускает оплату и возвращает ссылку на шлюз.
// @Summary      Обработать платеж
// @Tags         payments
// @Param        id   path      string  true  "Идентификатор платежа"
// @Success      200  {object}  Payment
// @Failure      410  {object}  utils.ErrorResponse "Платеж просрочен"
// @Failure      422  {object}  utils.ErrorResponse "Платеж не в статусе PENDING"
// @Router       /payments/{id}/process [post]
func (h *HTTPHandler) ProcessPayment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	payment, err := h.payments.ProcessPayment(r.Context(), id)
	if err != nil {
		h.writeError(r.Context(), w, err, "failed to process payment", slog.String("payment_id", id))
		return
	}
	utils.WriteJSON(w, PaymentEntityToJSON(payment), http.StatusOK)
}

// CancelPayment отменяет незавершенный платеж.
// @Summary      Отменить платеж
// @Tags         payments
// @Param        id   path      string  true  "Идентификатор платежа"
// @Success      200  {object}  Payment
// @Failure      422  {object}  utils.ErrorResponse "Платеж уже завершен"
// @Router       /payments/{id}/cancel [post]
func (h *HTTPHandler) CancelPayment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	payment, err := h.payments.CancelPayment(r.Context(), id)
	if err != nil {
		h.writeError(r.Context(), w, err, "failed to cancel payment", slog.String("payment_id", id))
		return
	}
	utils.WriteJSON(w, PaymentEntityToJSON(payment), http.StatusOK)
}

// PaymentCallback принимает ответ VNPay (return URL и IPN).
// @Summary      Callback платежного шлюза
// @Tags         payments
// @Success      200  {object}  Payment
// @Failure      400  {object}  utils.ErrorResponse "Неверная подпись"
// @Failure      422  {object}  utils.ErrorResponse "Платеж уже завершен"
// @Router       /payments/vnpay/callback [get]
func (h *HTTPHandler) PaymentCallback(w http.ResponseWriter, r *http.Request) {
	cb := gateway.ParseCallback(r.URL.Query())

	payment, err := h.payments.HandleCallback(r.Context(), cb.Params)
	if err != nil {
		callbackRequests.WithLabelValues(callbackResult(err)).Inc()
		h.writeError(r.Context(), w, err, "failed to handle payment callback", slog.String("transaction_id", cb.TxnRef))
		return
	}
	callbackRequests.WithLabelValues(string(payment.Status)).Inc()
	utils.WriteJSON(w, PaymentEntityToJSON(payment), http.StatusOK)
}

func callbackResult(err error) string {
	switch {
	case errors.Is(err, entities.ErrInvalidSignature):
		return "invalid_signature"
	case errors.Is(err, entities.ErrInvalidState):
		return "replay"
	case errors.Is(err, entities.ErrNotFound):
		return "unknown"
	}
	return "error"
}

// CreateShipping создает доставку для подтвержденного заказа.
// @Summary      Создать доставку
// @Tags         shippings
// @Param        request  body      CreateShippingRequest  true  "Доставка"
// @Success      201  {object}  Shipping
// @Failure      409  {object}  utils.ErrorResponse "Доставка уже существует"
// @Failure      422  {object}  utils.ErrorResponse "Заказ не подтвержден"
// @Router       /shippings [post]
func (h *HTTPHandler) CreateShipping(w http.ResponseWriter, r *http.Request) {
	var req CreateShippingRequest
	if !h.decode(w, r, &req) {
		return
	}

	shipping, err := h.shippings.CreateShipping(r.Context(), req.ToInput())
	if err != nil {
		h.writeError(r.Context(), w, err, "failed to create shipping", slog.String("order_id", req.OrderID))
		return
	}
	utils.WriteJSON(w, ShippingEntityToJSON(shipping, nil), http.StatusCreated)
}

// GetShipping возвращает доставку с историей статусов.
// @Summary      Получить доставку
// @Tags         shippings
// @Param        id   path      string  true  "Идентификатор доставки"
// @Success      200  {object}  Shipping
// @Failure      404  {object}  utils.ErrorResponse "Доставка не найдена"
// @Router       /shippings/{id} [get]
func (h *HTTPHandler) GetShipping(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	details, err := h.shippings.GetShipping(r.Context(), id)
	if err != nil {
		h.writeError(r.Context(), w, err, "failed to get shipping", slog.String("shipping_id", id))
		return
	}
	utils.WriteJSON(w, ShippingEntityToJSON(details.Shipping, details.History), http.StatusOK)
}

// UpdateShippingStatus меняет статус доставки.
// @Summary      Обновить статус доставки
// @Tags         shippings
// @Param        id       path      string                       true  "Идентификатор доставки"
// @Param        request  body      UpdateShippingStatusRequest  true  "Статус"
// @Success      200  {object}  Shipping
// @Failure      422  {object}  utils.ErrorResponse "Переход запрещен"
// @Router       /shippings/{id}/status [post]
func (h *HTTPHandler) UpdateShippingStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req UpdateShippingStatusRequest
	if !h.decode(w, r, &req) {
		return
	}

	shipping, err := h.shippings.UpdateShippingStatus(r.Context(), id, entities.ShippingStatus(req.Status), req.Notes)
	if err != nil {
		h.writeError(r.Context(), w, err, "failed to update shipping status", slog.String("shipping_id", id))
		return
	}
	utils.WriteJSON(w, ShippingEntityToJSON(shipping, nil), http.StatusOK)
}
