package onepipe

import (
	"context"
	"crypto/cipher"
	"crypto/des"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignature(t *testing.T) {
	// md5 hex over "requestRef;secret"
	assert.Equal(t, "f29f366502626e7dfe5df5f03e8f7eea", Signature("TEST_REF_1", "secret123"))
	assert.NotEqual(t, Signature("TEST_REF_1", "secret123"), Signature("TEST_REF_2", "secret123"))
}

func TestTripleDESKey(t *testing.T) {
	key := tripleDESKey("secret123")
	assert.Len(t, key, 24)
	// key is md5 extended by its own first 8 bytes
	assert.Equal(t, key[:8], key[16:])
}

func TestEncryptAccountDetailsRoundTrip(t *testing.T) {
	secret := "secret123"
	encrypted, err := EncryptAccountDetails(secret, "0123456789", "058")
	require.NoError(t, err)

	raw, err := base64.StdEncoding.DecodeString(encrypted)
	require.NoError(t, err)
	require.Zero(t, len(raw)%8)

	block, err := des.NewTripleDESCipher(tripleDESKey(secret))
	require.NoError(t, err)

	plain := make([]byte, len(raw))
	cipher.NewCBCDecrypter(block, make([]byte, block.BlockSize())).CryptBlocks(plain, raw)

	padding := int(plain[len(plain)-1])
	require.Less(t, padding, len(plain))
	assert.Equal(t, utf16le("0123456789;058"), plain[:len(plain)-padding])
}

func TestEncryptAccountDetailsIsDeterministic(t *testing.T) {
	a, err := EncryptAccountDetails("secret123", "0123456789", "058")
	require.NoError(t, err)
	b, err := EncryptAccountDetails("secret123", "0123456789", "058")
	require.NoError(t, err)
	assert.Equal(t, a, b)

	c, err := EncryptAccountDetails("secret123", "9876543210", "058")
	require.NoError(t, err)
	assert.NotEqual(t, a, c)
}

func TestParseOwnership(t *testing.T) {
	raw := []byte(`{"status":"Successful","data":{"bvn_linked":true,"account_name":"ADA OBI"}}`)
	result, err := parseOwnership(raw)
	require.NoError(t, err)
	assert.True(t, result.Linked)
	assert.Equal(t, "ADA OBI", result.AccountName)
}

func TestParseOwnershipRejectedEnvelope(t *testing.T) {
	raw := []byte(`{"status":"Failed","message":"invalid bvn"}`)
	_, err := parseOwnership(raw)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid bvn")
}

func TestParseMandatePrefersMandateID(t *testing.T) {
	raw := []byte(`{"status":"successful","data":{"mandate_id":"MND_1","reference":"REF_1","virtual_account":"9912345678"}}`)
	handle, err := parseMandate(raw)
	require.NoError(t, err)
	assert.Equal(t, "MND_1", handle.ExternalID)
	require.NotNil(t, handle.VirtualAccount)
	assert.Equal(t, "9912345678", *handle.VirtualAccount)
}

func TestParseMandateFallsBackToReference(t *testing.T) {
	raw := []byte(`{"status":"successful","data":{"reference":"REF_1","account_number":"9900000001"}}`)
	handle, err := parseMandate(raw)
	require.NoError(t, err)
	assert.Equal(t, "REF_1", handle.ExternalID)
	require.NotNil(t, handle.VirtualAccount)
	assert.Equal(t, "9900000001", *handle.VirtualAccount)
}

func TestParseMandateWithoutIdentifierFails(t *testing.T) {
	raw := []byte(`{"status":"successful","data":{"virtual_account":"9912345678"}}`)
	_, err := parseMandate(raw)
	assert.Error(t, err)
}

func TestParseBanks(t *testing.T) {
	raw := []byte(`{"status":"successful","data":{"banks":[{"code":"058","name":"GTBank"},{"code":"044","name":"Access Bank"}]}}`)
	banks, err := parseBanks(raw)
	require.NoError(t, err)
	require.Len(t, banks, 2)
	assert.Equal(t, "058", banks[0].Code)
}

func TestMockClientMandateHandlesAreUnique(t *testing.T) {
	mock := NewMockClient()

	first, err := mock.OpenMandateOrInvoice(context.Background(), OpenMandateParams{OrderID: "o1"})
	require.NoError(t, err)
	second, err := mock.OpenMandateOrInvoice(context.Background(), OpenMandateParams{OrderID: "o1"})
	require.NoError(t, err)

	assert.NotEqual(t, first.ExternalID, second.ExternalID)
	assert.NotEqual(t, *first.VirtualAccount, *second.VirtualAccount)
	assert.Len(t, mock.OpenedMandates, 2)
}

func TestMockClientFailureInjection(t *testing.T) {
	mock := NewMockClient()
	mock.OpenErr = ErrUnknownOutcome

	_, err := mock.OpenMandateOrInvoice(context.Background(), OpenMandateParams{OrderID: "o1"})
	assert.ErrorIs(t, err, ErrUnknownOutcome)
	assert.Empty(t, mock.OpenedMandates)
}

func TestSplitName(t *testing.T) {
	first, last := splitName("Ada Obi")
	assert.Equal(t, "Ada", first)
	assert.Equal(t, "Obi", last)

	first, last = splitName("Ada")
	assert.Equal(t, "Ada", first)
	assert.Equal(t, "", last)

	first, last = splitName("Ada Nneka Obi")
	assert.Equal(t, "Ada", first)
	assert.Equal(t, "Nneka Obi", last)
}
