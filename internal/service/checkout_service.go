package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"foodcart/internal/backend"
	apperrors "foodcart/internal/errors"
	"foodcart/internal/model"
	"foodcart/internal/session"
)

// CheckoutState is a position of the checkout state machine.
type CheckoutState string

// Checkout states. Failed is reported in an Outcome only; the persisted state
// after a failure is CheckoutForm so the user can retry.
const (
	StateBrowsing       CheckoutState = "Browsing"
	StateCheckoutForm   CheckoutState = "CheckoutForm"
	StatePaymentPending CheckoutState = "PaymentPending"
	StateSuccess        CheckoutState = "Success"
	StateFailed         CheckoutState = "Failed"
)

// Banner texts.
const (
	MessageOrderPlaced        = "Order placed successfully!"
	MessagePaymentSuccessful  = "Payment successful! Order placed."
	MessageOrderError         = "Error placing order. Please try again."
	MessagePaymentInitFailed  = "Payment initialization failed"
	MessageOrderFailed        = "Failed to place order"
	MessagePaymentNotVerified = "Payment verification failed"
	MessageLoginToOrder       = "Please login to place an order"
	MessageMissingFields      = "Please fill all required fields."
	MessageMissingRestaurant  = "Restaurant information missing in cart."
	MessageMissingCardDetails = "Please enter your card details."
	paymentDescription        = "Food Order Payment"
	defaultGatewayCurrency    = "INR"
)

// CheckoutForm is the data entered on the checkout form. Card fields are
// opaque text forwarded to the backend.
type CheckoutForm struct {
	DeliveryAddress string `json:"deliveryAddress" form:"deliveryAddress"`
	PaymentMethod   string `json:"paymentMethod" form:"paymentMethod"`
	CardNumber      string `json:"cardNumber" form:"cardNumber"`
	CardExpiry      string `json:"cardExpiry" form:"cardExpiry"`
	CardCVV         string `json:"cardCvv" form:"cardCvv"`
	NameOnCard      string `json:"nameOnCard" form:"nameOnCard"`
}

// WidgetConfig is handed to the browser to open the payment widget.
type WidgetConfig struct {
	Key         string `json:"key"`
	Amount      int64  `json:"amount"`
	Currency    string `json:"currency"`
	Name        string `json:"name"`
	Description string `json:"description"`
	OrderID     string `json:"order_id"`
}

// Outcome is the result of a checkout action.
type Outcome struct {
	State         CheckoutState `json:"state"`
	Message       string        `json:"message,omitempty"`
	MessageType   string        `json:"messageType,omitempty"`
	Order         *model.Order  `json:"order,omitempty"`
	Widget        *WidgetConfig `json:"widget,omitempty"`
	Redirect      string        `json:"redirect,omitempty"`
	RedirectAfter time.Duration `json:"-"`
	Totals        Totals        `json:"-"`
}

// Failed reports whether the outcome is a recoverable failure.
func (o *Outcome) Failed() bool {
	return o != nil && o.State == StateFailed
}

// CheckoutConfig holds the checkout settings.
type CheckoutConfig struct {
	GatewayKeyID  string
	StoreName     string
	RedirectDelay time.Duration
}

// CheckoutService drives the checkout state machine of one session.
type CheckoutService interface {
	State(sess *session.Session) CheckoutState
	Proceed(ctx context.Context, sess *session.Session) (*Outcome, error)
	Cancel(ctx context.Context, sess *session.Session) (*Outcome, error)
	Submit(ctx context.Context, sess *session.Session, form CheckoutForm) (*Outcome, error)
	CompletePayment(ctx context.Context, sess *session.Session, cb model.GatewayCallback) (*Outcome, error)
}

// pendingPayment is the snapshot taken when the gateway order is opened, so the
// verification call sends exactly what the user confirmed.
type pendingPayment struct {
	GatewayOrderID  string            `json:"gatewayOrderId"`
	UserID          string            `json:"userId"`
	RestaurantID    string            `json:"restaurantId"`
	Items           []model.OrderLine `json:"items"`
	TotalAmount     decimal.Decimal   `json:"totalAmount"`
	DeliveryAddress string            `json:"deliveryAddress"`
}

type checkoutService struct {
	orders  OrderBackend
	carts   CartService
	journal CheckoutJournal
	cfg     CheckoutConfig
	log     zerolog.Logger
}

// NewCheckoutService creates a new checkout service.
func NewCheckoutService(orders OrderBackend, carts CartService, journal CheckoutJournal, cfg CheckoutConfig, log zerolog.Logger) CheckoutService {
	if journal == nil {
		journal = NopJournal{}
	}
	if cfg.StoreName == "" {
		cfg.StoreName = "Food Delivery App"
	}
	return &checkoutService{
		orders:  orders,
		carts:   carts,
		journal: journal,
		cfg:     cfg,
		log:     log.With().Str("component", "checkout").Logger(),
	}
}

// State returns the persisted state, Browsing when none is stored.
func (s *checkoutService) State(sess *session.Session) CheckoutState {
	switch st := CheckoutState(sess.Get(session.KeyCheckoutState)); st {
	case StateCheckoutForm, StatePaymentPending:
		return st
	default:
		return StateBrowsing
	}
}

// Proceed opens the checkout form. No network call beyond reading the cart.
func (s *checkoutService) Proceed(ctx context.Context, sess *session.Session) (*Outcome, error) {
	if !sess.SignedIn() {
		return nil, apperrors.ErrNotSignedIn
	}
	switch s.State(sess) {
	case StateBrowsing, StateCheckoutForm:
	default:
		return nil, apperrors.ErrInvalidTransition
	}

	cart, err := s.carts.FetchCart(ctx, sess.UserID())
	if err != nil {
		return nil, err
	}
	if cart.IsEmpty() {
		return nil, apperrors.ErrEmptyCart
	}

	if err := s.transition(ctx, sess, StateCheckoutForm); err != nil {
		return nil, err
	}
	return &Outcome{State: StateCheckoutForm, Totals: s.totals(cart)}, nil
}

// Cancel leaves the form for the cart, or abandons an open gateway payment.
func (s *checkoutService) Cancel(ctx context.Context, sess *session.Session) (*Outcome, error) {
	switch s.State(sess) {
	case StateBrowsing:
		return &Outcome{State: StateBrowsing}, nil
	case StateCheckoutForm:
		if err := s.transition(ctx, sess, StateBrowsing); err != nil {
			return nil, err
		}
		return &Outcome{State: StateBrowsing}, nil
	case StatePaymentPending:
		if err := sess.Remove(ctx, session.KeyPendingPayment); err != nil {
			return nil, fmt.Errorf("drop pending payment: %w", err)
		}
		if err := s.transition(ctx, sess, StateCheckoutForm); err != nil {
			return nil, err
		}
		return &Outcome{State: StateCheckoutForm}, nil
	}
	return nil, apperrors.ErrInvalidTransition
}

// Submit validates the form and either places the order directly or opens a
// gateway order for the widget.
func (s *checkoutService) Submit(ctx context.Context, sess *session.Session, form CheckoutForm) (*Outcome, error) {
	if !sess.SignedIn() {
		return nil, apperrors.NewValidationError("userId", MessageLoginToOrder)
	}
	if s.State(sess) != StateCheckoutForm {
		return nil, apperrors.ErrInvalidTransition
	}

	cart, err := s.carts.FetchCart(ctx, sess.UserID())
	if err != nil {
		return nil, err
	}
	form.DeliveryAddress = strings.TrimSpace(form.DeliveryAddress)
	form.PaymentMethod = strings.TrimSpace(form.PaymentMethod)

	lines, restaurantID, err := validateCheckout(form, cart)
	if err != nil {
		s.journal.Record(ctx, s.entry(sess, form.PaymentMethod, "", decimal.Zero, model.CheckoutStatusRejected, err.Error()))
		return nil, err
	}

	totals := s.totals(cart)
	if form.PaymentMethod == model.PaymentMethodGateway {
		return s.openGatewayPayment(ctx, sess, form, lines, restaurantID, totals)
	}
	return s.placeOrder(ctx, sess, form, lines, restaurantID, totals)
}

// CompletePayment verifies the widget callback against the pending snapshot.
func (s *checkoutService) CompletePayment(ctx context.Context, sess *session.Session, cb model.GatewayCallback) (*Outcome, error) {
	if s.State(sess) != StatePaymentPending {
		return nil, apperrors.ErrNoPendingPayment
	}
	pending, err := loadPending(sess)
	if err != nil {
		return nil, err
	}
	if pending.GatewayOrderID != cb.OrderID || pending.UserID != sess.UserID() {
		return nil, apperrors.ErrNoPendingPayment
	}

	result, err := s.orders.VerifyPayment(ctx, backend.VerifyPaymentRequest{
		GatewayOrderID:   cb.OrderID,
		GatewayPaymentID: cb.PaymentID,
		GatewaySignature: cb.Signature,
		UserID:           pending.UserID,
		RestaurantID:     pending.RestaurantID,
		Items:            pending.Items,
		TotalAmount:      pending.TotalAmount.InexactFloat64(),
		DeliveryAddress:  pending.DeliveryAddress,
	})

	var failure string
	switch {
	case err != nil:
		failure = apperrors.UserMessage(err, MessagePaymentNotVerified)
	case !result.Success:
		failure = result.Message
		if failure == "" {
			failure = MessagePaymentNotVerified
		}
	}
	if failure != "" {
		entry := s.entry(sess, model.PaymentMethodGateway, cb.OrderID, pending.TotalAmount, model.CheckoutStatusPaymentRejected, failure)
		s.journal.Record(ctx, entry)
		s.log.Warn().Err(err).Str("session_id", sess.ID()).Str("gateway_order_id", cb.OrderID).Msg("payment verification failed")
		if rerr := sess.Remove(ctx, session.KeyPendingPayment); rerr != nil {
			return nil, fmt.Errorf("drop pending payment: %w", rerr)
		}
		return s.fail(ctx, sess, failure)
	}

	s.journal.Record(ctx, s.entry(sess, model.PaymentMethodGateway, cb.OrderID, pending.TotalAmount, model.CheckoutStatusPaymentVerified, ""))
	if err := sess.Remove(ctx, session.KeyPendingPayment); err != nil {
		return nil, fmt.Errorf("drop pending payment: %w", err)
	}
	return s.succeed(ctx, sess, MessagePaymentSuccessful, result.Order)
}

func (s *checkoutService) placeOrder(ctx context.Context, sess *session.Session, form CheckoutForm, lines []model.OrderLine, restaurantID string, totals Totals) (*Outcome, error) {
	req := backend.CreateOrderRequest{
		UserID:          sess.UserID(),
		Restaurant:      restaurantID,
		Items:           lines,
		TotalAmount:     totals.Total.InexactFloat64(),
		DeliveryAddress: form.DeliveryAddress,
		PaymentMethod:   form.PaymentMethod,
	}
	if form.PaymentMethod == model.PaymentMethodCard {
		req.PaymentDetails = &model.PaymentDetails{
			CardNumber: form.CardNumber,
			CardExpiry: form.CardExpiry,
			CardCVV:    form.CardCVV,
			NameOnCard: form.NameOnCard,
		}
	}

	result, err := s.orders.CreateOrder(ctx, req)
	if err != nil {
		msg := apperrors.UserMessage(err, MessageOrderError)
		s.journal.Record(ctx, s.entry(sess, form.PaymentMethod, "", totals.Total, model.CheckoutStatusOrderFailed, msg))
		s.log.Error().Err(err).Str("session_id", sess.ID()).Msg("create order failed")
		return s.fail(ctx, sess, msg)
	}
	if !result.Success {
		msg := result.Message
		if msg == "" {
			msg = MessageOrderFailed
		}
		s.journal.Record(ctx, s.entry(sess, form.PaymentMethod, "", totals.Total, model.CheckoutStatusOrderFailed, msg))
		return s.fail(ctx, sess, msg)
	}

	s.journal.Record(ctx, s.entry(sess, form.PaymentMethod, "", totals.Total, model.CheckoutStatusOrderPlaced, ""))
	return s.succeed(ctx, sess, MessageOrderPlaced, result.Order)
}

func (s *checkoutService) openGatewayPayment(ctx context.Context, sess *session.Session, form CheckoutForm, lines []model.OrderLine, restaurantID string, totals Totals) (*Outcome, error) {
	receipt := "order_" + uuid.New().String()
	gwOrder, err := s.orders.CreatePaymentOrder(ctx, totals.Total, receipt)
	if err != nil {
		msg := apperrors.UserMessage(err, MessagePaymentInitFailed)
		s.journal.Record(ctx, s.entry(sess, form.PaymentMethod, "", totals.Total, model.CheckoutStatusGatewayFailed, msg))
		s.log.Error().Err(err).Str("session_id", sess.ID()).Msg("create gateway order failed")
		return s.fail(ctx, sess, msg)
	}

	pending := pendingPayment{
		GatewayOrderID:  gwOrder.ID,
		UserID:          sess.UserID(),
		RestaurantID:    restaurantID,
		Items:           lines,
		TotalAmount:     totals.Total,
		DeliveryAddress: form.DeliveryAddress,
	}
	raw, err := json.Marshal(pending)
	if err != nil {
		return nil, fmt.Errorf("encode pending payment: %w", err)
	}
	if err := sess.Set(ctx, map[string]string{
		session.KeyPendingPayment: string(raw),
		session.KeyCheckoutState:  string(StatePaymentPending),
	}); err != nil {
		return nil, fmt.Errorf("store pending payment: %w", err)
	}
	s.journal.Record(ctx, s.entry(sess, form.PaymentMethod, gwOrder.ID, totals.Total, model.CheckoutStatusGatewayOpened, ""))
	s.log.Info().Str("session_id", sess.ID()).Str("gateway_order_id", gwOrder.ID).
		Str("from", string(StateCheckoutForm)).Str("to", string(StatePaymentPending)).Msg("checkout transition")

	currency := gwOrder.Currency
	if currency == "" {
		currency = defaultGatewayCurrency
	}
	return &Outcome{
		State: StatePaymentPending,
		Widget: &WidgetConfig{
			Key:         s.cfg.GatewayKeyID,
			Amount:      gwOrder.Amount,
			Currency:    currency,
			Name:        s.cfg.StoreName,
			Description: paymentDescription,
			OrderID:     gwOrder.ID,
		},
		Totals: totals,
	}, nil
}

// succeed stores the read-once confirmation, resets the machine and makes sure
// the cart the backend cleared is really empty before redirecting.
func (s *checkoutService) succeed(ctx context.Context, sess *session.Session, message string, order *model.Order) (*Outcome, error) {
	if err := sess.SetOrderSuccessMessage(ctx, MessageOrderPlaced); err != nil {
		return nil, err
	}
	if err := s.transition(ctx, sess, StateBrowsing); err != nil {
		return nil, err
	}
	s.clearLeftovers(ctx, sess.UserID())

	return &Outcome{
		State:         StateSuccess,
		Message:       message,
		MessageType:   "success",
		Order:         order,
		Redirect:      "/orders",
		RedirectAfter: s.cfg.RedirectDelay,
	}, nil
}

func (s *checkoutService) fail(ctx context.Context, sess *session.Session, message string) (*Outcome, error) {
	if err := s.transition(ctx, sess, StateCheckoutForm); err != nil {
		return nil, err
	}
	return &Outcome{State: StateFailed, Message: message, MessageType: "error"}, nil
}

func (s *checkoutService) clearLeftovers(ctx context.Context, userID string) {
	cart, err := s.carts.FetchCart(ctx, userID)
	if err != nil {
		s.log.Warn().Err(err).Str("user_id", userID).Msg("re-fetch cart after order")
		return
	}
	for _, item := range cart.Items {
		if _, err := s.carts.RemoveItem(ctx, userID, item.MenuItem.ID); err != nil {
			s.log.Warn().Err(err).Str("menu_item_id", item.MenuItem.ID).Msg("remove leftover cart line")
		}
	}
}

func (s *checkoutService) transition(ctx context.Context, sess *session.Session, to CheckoutState) error {
	from := s.State(sess)
	if err := sess.Set(ctx, map[string]string{session.KeyCheckoutState: string(to)}); err != nil {
		return fmt.Errorf("store checkout state: %w", err)
	}
	s.log.Debug().Str("session_id", sess.ID()).Str("from", string(from)).Str("to", string(to)).Msg("checkout transition")
	return nil
}

// totals comes from the cart service so the summary shown on the cart view is
// the amount sent with the order.
func (s *checkoutService) totals(cart *model.Cart) Totals {
	return s.carts.Totals(cart)
}

func (s *checkoutService) entry(sess *session.Session, method, gatewayOrderID string, total decimal.Decimal, status model.CheckoutStatus, msg string) model.CheckoutLog {
	return model.CheckoutLog{
		SessionID:      sess.ID(),
		UserID:         sess.UserID(),
		PaymentMethod:  method,
		GatewayOrderID: gatewayOrderID,
		TotalAmount:    total,
		Status:         status,
		ErrorMessage:   msg,
		CreatedAt:      time.Now(),
	}
}

// validateCheckout checks the form in a fixed order and derives the order lines
// and restaurant from the cart.
func validateCheckout(form CheckoutForm, cart *model.Cart) ([]model.OrderLine, string, error) {
	if form.DeliveryAddress == "" {
		return nil, "", apperrors.NewValidationError("deliveryAddress", MessageMissingFields)
	}
	switch form.PaymentMethod {
	case model.PaymentMethodGateway, model.PaymentMethodCOD, model.PaymentMethodCard:
	default:
		return nil, "", apperrors.NewValidationError("paymentMethod", MessageMissingFields)
	}

	lines := model.LinesFromCart(cart)
	if len(lines) == 0 {
		return nil, "", apperrors.NewValidationError("items", MessageMissingFields)
	}
	restaurantID := cart.Items[0].RestaurantID()
	if restaurantID == "" {
		return nil, "", apperrors.NewValidationError("restaurant", MessageMissingRestaurant)
	}

	if form.PaymentMethod == model.PaymentMethodCard {
		fields := []struct{ name, value string }{
			{"cardNumber", form.CardNumber},
			{"cardExpiry", form.CardExpiry},
			{"cardCvv", form.CardCVV},
			{"nameOnCard", form.NameOnCard},
		}
		for _, f := range fields {
			if strings.TrimSpace(f.value) == "" {
				return nil, "", apperrors.NewValidationError(f.name, MessageMissingCardDetails)
			}
		}
	}
	return lines, restaurantID, nil
}

func loadPending(sess *session.Session) (pendingPayment, error) {
	var p pendingPayment
	raw := sess.Get(session.KeyPendingPayment)
	if raw == "" {
		return p, apperrors.ErrNoPendingPayment
	}
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return p, fmt.Errorf("decode pending payment: %w", err)
	}
	return p, nil
}
