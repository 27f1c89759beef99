package paymentprovider

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signPayload(t *testing.T, payload []byte, secret string, ts int64) string {
	t.Helper()
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(strconv.FormatInt(ts, 10)))
	mac.Write([]byte("."))
	mac.Write(payload)
	return fmt.Sprintf("t=%d,v1=%s", ts, hex.EncodeToString(mac.Sum(nil)))
}

func TestVerifySignature_Valid(t *testing.T) {
	payload := []byte(`{"id":"evt_1","type":"checkout.session.completed"}`)
	header := signPayload(t, payload, "whsec_test", time.Now().Unix())

	err := VerifySignature(payload, header, "whsec_test", DefaultTolerance)
	require.NoError(t, err)
}

func TestVerifySignature_WrongSecret(t *testing.T) {
	payload := []byte(`{"id":"evt_1"}`)
	header := signPayload(t, payload, "whsec_other", time.Now().Unix())

	err := VerifySignature(payload, header, "whsec_test", DefaultTolerance)
	assert.ErrorIs(t, err, ErrSignatureMismatch)
}

func TestVerifySignature_TamperedPayload(t *testing.T) {
	payload := []byte(`{"amount":100}`)
	header := signPayload(t, payload, "whsec_test", time.Now().Unix())

	err := VerifySignature([]byte(`{"amount":999}`), header, "whsec_test", DefaultTolerance)
	assert.ErrorIs(t, err, ErrSignatureMismatch)
}

func TestVerifySignature_ExpiredTimestamp(t *testing.T) {
	payload := []byte(`{}`)
	old := time.Now().Add(-time.Hour).Unix()
	header := signPayload(t, payload, "whsec_test", old)

	err := VerifySignature(payload, header, "whsec_test", DefaultTolerance)
	assert.ErrorIs(t, err, ErrSignatureExpired)
}

func TestVerifySignature_MalformedHeader(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{"empty", ""},
		{"missing timestamp", "v1=deadbeef"},
		{"missing signature", "t=1700000000"},
		{"garbage timestamp", "t=abc,v1=deadbeef"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := VerifySignature([]byte(`{}`), tt.header, "whsec_test", DefaultTolerance)
			assert.ErrorIs(t, err, ErrInvalidSignatureHeader)
		})
	}
}

func TestVerifySignature_SecondSignatureAccepted(t *testing.T) {
	payload := []byte(`{"id":"evt_2"}`)
	ts := time.Now().Unix()
	valid := signPayload(t, payload, "whsec_test", ts)
	header := fmt.Sprintf("t=%d,v1=%s,%s", ts, hex.EncodeToString([]byte("bogus-signature-bytes-here-1234")), valid[len(fmt.Sprintf("t=%d,", ts)):])

	err := VerifySignature(payload, header, "whsec_test", DefaultTolerance)
	require.NoError(t, err)
}
