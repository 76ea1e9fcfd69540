package onepipe

import (
	"bytes"
	"context"
	"crypto/cipher"
	"crypto/des"
	"crypto/md5"
	"crypto/rand"
	"encoding/base64"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
	"unicode/utf16"
)

// Client is the boundary to the OnePipe mandate service. Implementations are
// chosen at composition time: the HTTP client in production, MockClient in
// tests and sandbox runs. Business logic never branches on which one it got.
type Client interface {
	VerifyAccountOwnership(ctx context.Context, p VerifyOwnershipParams) (*OwnershipResult, error)
	OpenMandateOrInvoice(ctx context.Context, p OpenMandateParams) (*MandateHandle, error)
	QueryMandateStatus(ctx context.Context, externalID string) (string, error)
	ListBanks(ctx context.Context) ([]Bank, error)
}

type Config struct {
	APIURL       string // e.g. https://api.dev.onepipe.io/v2/transact
	APIKey       string
	ClientSecret string // signs requests and encrypts account blobs
	Timeout      time.Duration
}

type VerifyOwnershipParams struct {
	Bvn           string
	AccountNumber string
	BankCode      string
}

type OwnershipResult struct {
	Linked      bool
	AccountName string
}

type OpenMandateParams struct {
	CustomerRef   string
	CustomerName  string
	CustomerEmail string
	AccountNumber string
	BankCode      string
	// Amounts in minor units; converted to the provider's decimal format once,
	// at this edge.
	TotalMinor          int64
	PerInstallmentMinor int64
	Installments        int
	OrderID             string
	SinglePayment       bool
}

type MandateHandle struct {
	ExternalID     string
	VirtualAccount *string
}

type Bank struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// ErrUnknownOutcome marks a timed-out provider call. The mandate may or may
// not exist on the provider side; callers must reconcile via
// QueryMandateStatus before retrying, never blindly re-send (a fresh nonce
// would open a duplicate mandate).
var ErrUnknownOutcome = errors.New("onepipe: request timed out, outcome unknown")

type httpClient struct {
	cfg    Config
	client *http.Client
}

func NewClient(cfg Config) Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &httpClient{
		cfg:    cfg,
		client: &http.Client{Timeout: timeout},
	}
}

// requestRef doubles as the provider-side idempotency nonce: every call gets
// a fresh one, and the signature is bound to it.
func requestRef(prefix string) string {
	b := make([]byte, 4)
	_, _ = rand.Read(b)
	return fmt.Sprintf("%s_%d_%s", prefix, time.Now().UnixMilli(), hex.EncodeToString(b))
}

// Signature returns the per-request signature: md5 hex over "requestRef;secret".
func Signature(ref, secret string) string {
	sum := md5.Sum([]byte(ref + ";" + secret))
	return hex.EncodeToString(sum[:])
}

func utf16le(s string) []byte {
	codes := utf16.Encode([]rune(s))
	out := make([]byte, 2*len(codes))
	for i, c := range codes {
		binary.LittleEndian.PutUint16(out[2*i:], c)
	}
	return out
}

// tripleDESKey derives the 24-byte key OnePipe expects: md5 over the UTF-16LE
// secret, extended by its own first 8 bytes.
func tripleDESKey(secret string) []byte {
	sum := md5.Sum(utf16le(secret))
	key := make([]byte, 0, 24)
	key = append(key, sum[:]...)
	key = append(key, sum[:8]...)
	return key
}

func pkcs7Pad(data []byte, blockSize int) []byte {
	padding := blockSize - len(data)%blockSize
	return append(data, bytes.Repeat([]byte{byte(padding)}, padding)...)
}

// EncryptAccountDetails produces the "secure" auth blob: 3DES-CBC over the
// UTF-16LE "accountNumber;bankCode" pair with a zero IV, base64-encoded.
func EncryptAccountDetails(secret, accountNumber, bankCode string) (string, error) {
	block, err := des.NewTripleDESCipher(tripleDESKey(secret))
	if err != nil {
		return "", err
	}

	plain := pkcs7Pad(utf16le(accountNumber+";"+bankCode), block.BlockSize())
	iv := make([]byte, block.BlockSize())

	out := make([]byte, len(plain))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(out, plain)

	return base64.StdEncoding.EncodeToString(out), nil
}

type requestAuth struct {
	Type         *string `json:"type"`
	Secure       *string `json:"secure"`
	AuthProvider string  `json:"auth_provider"`
}

type requestCustomer struct {
	CustomerRef string `json:"customer_ref"`
	Firstname   string `json:"firstname"`
	Surname     string `json:"surname"`
	Email       string `json:"email"`
	Mobile      string `json:"mobile"`
}

type requestTransaction struct {
	MockMode        string           `json:"mock_mode"`
	TransactionRef  string           `json:"transaction_ref"`
	TransactionDesc string           `json:"transaction_desc,omitempty"`
	Amount          float64          `json:"amount"`
	Customer        *requestCustomer `json:"customer,omitempty"`
	Meta            map[string]any   `json:"meta,omitempty"`
	Details         map[string]any   `json:"details"`
}

type requestEnvelope struct {
	RequestRef  string             `json:"request_ref"`
	RequestType string             `json:"request_type"`
	Auth        requestAuth        `json:"auth"`
	Transaction requestTransaction `json:"transaction"`
}

func (h *httpClient) bankAccountAuth(accountNumber, bankCode string) (requestAuth, error) {
	secure, err := EncryptAccountDetails(h.cfg.ClientSecret, accountNumber, bankCode)
	if err != nil {
		return requestAuth{}, err
	}
	authType := "bank.account"
	return requestAuth{
		Type:         &authType,
		Secure:       &secure,
		AuthProvider: "paywithaccount",
	}, nil
}

func (h *httpClient) post(ctx context.Context, ref string, envelope requestEnvelope) ([]byte, error) {
	body, err := json.Marshal(envelope)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.cfg.APIURL, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+h.cfg.APIKey)
	req.Header.Set("Signature", Signature(ref, h.cfg.ClientSecret))

	resp, err := h.client.Do(req)
	if err != nil {
		if isTimeout(err) {
			return nil, ErrUnknownOutcome
		}
		return nil, fmt.Errorf("onepipe: %s: %w", envelope.RequestType, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("onepipe: read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		log.Printf("onepipe %s error: status=%d body=%s", envelope.RequestType, resp.StatusCode, raw)
		return nil, fmt.Errorf("onepipe: %s failed with status %d", envelope.RequestType, resp.StatusCode)
	}

	return raw, nil
}

func isTimeout(err error) bool {
	var netErr interface{ Timeout() bool }
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	return errors.Is(err, context.DeadlineExceeded)
}

func (h *httpClient) VerifyAccountOwnership(ctx context.Context, p VerifyOwnershipParams) (*OwnershipResult, error) {
	ref := requestRef("BVN")
	auth, err := h.bankAccountAuth(p.AccountNumber, p.BankCode)
	if err != nil {
		return nil, err
	}

	raw, err := h.post(ctx, ref, requestEnvelope{
		RequestRef:  ref,
		RequestType: "lookup_bvn_min",
		Auth:        auth,
		Transaction: requestTransaction{
			MockMode:        "live",
			TransactionRef:  ref,
			TransactionDesc: "BVN Verification",
			Customer:        &requestCustomer{CustomerRef: ref},
			Meta: map[string]any{
				"a_bank_code":      p.BankCode,
				"a_account_number": p.AccountNumber,
				"a_bvn":            p.Bvn,
			},
		},
	})
	if err != nil {
		return nil, err
	}

	return parseOwnership(raw)
}

func (h *httpClient) OpenMandateOrInvoice(ctx context.Context, p OpenMandateParams) (*MandateHandle, error) {
	ref := requestRef("INV")
	auth, err := h.bankAccountAuth(p.AccountNumber, p.BankCode)
	if err != nil {
		return nil, err
	}

	firstname, surname := splitName(p.CustomerName)
	startDate := time.Now()
	endDate := startDate.AddDate(0, p.Installments, 0)

	meta := map[string]any{
		"a_bank_code":      p.BankCode,
		"a_account_number": p.AccountNumber,
		"order_id":         p.OrderID,
	}
	desc := fmt.Sprintf("Order %s - single payment", p.OrderID)
	if !p.SinglePayment {
		meta["mandate_type"] = "recurring"
		meta["mandate_frequency"] = "monthly"
		meta["mandate_duration"] = p.Installments
		meta["mandate_start_date"] = startDate.Format("2006-01-02")
		meta["mandate_end_date"] = endDate.Format("2006-01-02")
		desc = fmt.Sprintf("Order %s - %d month installment", p.OrderID, p.Installments)
	}

	raw, err := h.post(ctx, ref, requestEnvelope{
		RequestRef:  ref,
		RequestType: "send_invoice",
		Auth:        auth,
		Transaction: requestTransaction{
			MockMode:        "live",
			TransactionRef:  ref,
			TransactionDesc: desc,
			Amount:          float64(p.PerInstallmentMinor) / 100,
			Customer: &requestCustomer{
				CustomerRef: p.CustomerRef,
				Firstname:   firstname,
				Surname:     surname,
				Email:       p.CustomerEmail,
			},
			Meta: meta,
			Details: map[string]any{
				"description":  fmt.Sprintf("BNPL payment - %d installment(s)", p.Installments),
				"total_amount": float64(p.TotalMinor) / 100,
				"installments": p.Installments,
			},
		},
	})
	if err != nil {
		return nil, err
	}

	return parseMandate(raw)
}

func (h *httpClient) QueryMandateStatus(ctx context.Context, externalID string) (string, error) {
	ref := requestRef("STATUS")

	raw, err := h.post(ctx, ref, requestEnvelope{
		RequestRef:  ref,
		RequestType: "get_mandate_status",
		Auth:        requestAuth{AuthProvider: "paywithaccount"},
		Transaction: requestTransaction{
			MockMode:       "live",
			TransactionRef: ref,
			Meta:           map[string]any{"mandate_id": externalID},
		},
	})
	if err != nil {
		return "", err
	}

	return parseStatus(raw)
}

func (h *httpClient) ListBanks(ctx context.Context) ([]Bank, error) {
	ref := requestRef("BANKS")

	raw, err := h.post(ctx, ref, requestEnvelope{
		RequestRef:  ref,
		RequestType: "get_banks",
		Auth:        requestAuth{AuthProvider: "paywithaccount"},
		Transaction: requestTransaction{
			MockMode:       "live",
			TransactionRef: ref,
		},
	})
	if err != nil {
		return nil, err
	}

	return parseBanks(raw)
}

func splitName(full string) (string, string) {
	for i, r := range full {
		if r == ' ' {
			return full[:i], full[i+1:]
		}
	}
	return full, ""
}
