// internal/domain/checkout/service.go
package checkout

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/prnse-cda/cda-store/internal/config"
	"github.com/prnse-cda/cda-store/internal/domain/cart"
	"github.com/prnse-cda/cda-store/internal/domain/catalog"
)

var (
	// ErrCartEmpty rejects checkout with nothing in the cart
	ErrCartEmpty = errors.New("cart is empty")

	// ErrDestinationUnavailable means the contact resource yielded no
	// WhatsApp number. Checkout fails closed rather than sending an order
	// into the void.
	ErrDestinationUnavailable = errors.New("order destination is not configured")
)

var (
	pincodePattern = regexp.MustCompile(`^[1-9][0-9]{5}$`)
	letterPattern  = regexp.MustCompile(`^[a-zA-Z\s]+$`)
	digitsOnly     = regexp.MustCompile(`[^0-9]`)
)

// ValidationError points at the first form field that failed
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return e.Message
}

// CustomerDetails is the delivery form submitted at checkout
type CustomerDetails struct {
	Name     string `json:"name"`
	Address  string `json:"address"`
	Landmark string `json:"landmark"`
	City     string `json:"city"`
	Pincode  string `json:"pincode"`
}

// Order is a composed order ready to hand off: the plain-text message and
// the destination number it goes to.
type Order struct {
	Message     string `json:"message"`
	Destination string `json:"destination"`
	Total       float64
}

// ContactSource resolves the store contact block, typically the catalog cache
type ContactSource interface {
	Contact(ctx context.Context) (catalog.Contact, bool)
}

// Service composes orders from the cart and customer details
type Service struct {
	contacts ContactSource
	config   *config.Config
	log      *logrus.Logger
}

// NewService creates a new checkout service
func NewService(contacts ContactSource, cfg *config.Config, log *logrus.Logger) *Service {
	return &Service{
		contacts: contacts,
		config:   cfg,
		log:      log,
	}
}

// Compose validates the cart and customer details and builds the order
// message. Validation stops at the first failure, cart first, then fields in
// form order.
func (s *Service) Compose(ctx context.Context, c cart.Cart, details CustomerDetails) (Order, error) {
	if len(c.Lines) == 0 {
		return Order{}, ErrCartEmpty
	}
	if err := validate(details); err != nil {
		return Order{}, err
	}

	contact, ok := s.contacts.Contact(ctx)
	destination := sanitizeDestination(contact.WhatsApp)
	if !ok || destination == "" {
		s.log.Warn("checkout blocked, no order destination configured")
		return Order{}, ErrDestinationUnavailable
	}

	return Order{
		Message:     composeMessage(s.config.Store.Name, c, details),
		Destination: destination,
		Total:       c.Total(),
	}, nil
}

// WhatsAppURL builds the handoff link that opens a chat with the order
// message prefilled.
func WhatsAppURL(order Order) string {
	return fmt.Sprintf("https://wa.me/%s?text=%s", order.Destination, encodeComponent(order.Message))
}

func validate(d CustomerDetails) error {
	name := strings.TrimSpace(d.Name)
	address := strings.TrimSpace(d.Address)
	city := strings.TrimSpace(d.City)
	pincode := strings.TrimSpace(d.Pincode)

	if name == "" {
		return &ValidationError{Field: "name", Message: "Name is required"}
	}
	if address == "" {
		return &ValidationError{Field: "address", Message: "Address is required"}
	}
	if city == "" {
		return &ValidationError{Field: "city", Message: "City is required"}
	}
	if pincode == "" {
		return &ValidationError{Field: "pincode", Message: "Pincode is required"}
	}
	if !pincodePattern.MatchString(pincode) {
		return &ValidationError{Field: "pincode", Message: "Enter a valid 6-digit pincode"}
	}
	if !letterPattern.MatchString(name) {
		return &ValidationError{Field: "name", Message: "Name must contain only letters and spaces"}
	}
	if !letterPattern.MatchString(city) {
		return &ValidationError{Field: "city", Message: "City must contain only letters and spaces"}
	}
	if len(address) < 10 {
		return &ValidationError{Field: "address", Message: "Address must be at least 10 characters"}
	}
	return nil
}

// composeMessage renders the plain-text order. The shape is fixed; the
// receiving side reads these messages by eye.
func composeMessage(storeName string, c cart.Cart, d CustomerDetails) string {
	var b strings.Builder
	fmt.Fprintf(&b, "New Order - %s\n\n", storeName)

	for _, line := range c.Lines {
		size := line.Variant
		if size == "" {
			size = "N/A"
		}
		fmt.Fprintf(&b, "%s (%s) x %d\n", line.ProductID, size, line.Quantity)
	}

	fmt.Fprintf(&b, "\nTotal: ₹%s\n\n", formatAmount(c.Total()))

	b.WriteString("Customer:\n")
	b.WriteString(strings.TrimSpace(d.Name) + "\n")

	addr := strings.TrimSpace(d.Address)
	if landmark := strings.TrimSpace(d.Landmark); landmark != "" {
		addr += ", " + landmark
	}
	fmt.Fprintf(&b, "%s, %s - %s\n", addr, strings.TrimSpace(d.City), strings.TrimSpace(d.Pincode))

	return b.String()
}

// formatAmount prints totals without a forced decimal point, so whole-rupee
// totals read "250", not "250.00".
func formatAmount(total float64) string {
	return strconv.FormatFloat(total, 'f', -1, 64)
}

// sanitizeDestination strips everything but digits from a phone number
func sanitizeDestination(raw string) string {
	return digitsOnly.ReplaceAllString(raw, "")
}

// encodeComponent percent-encodes for URL embedding, with spaces as %20
// rather than "+" so messaging apps decode them correctly.
func encodeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
