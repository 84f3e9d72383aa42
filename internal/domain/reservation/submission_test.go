package reservation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeSubmission_NewShape(t *testing.T) {
	raw := []byte(`{
		"guest_name": "Anna Schmidt",
		"guest_email": "anna@example.com",
		"guest_phone": "+49 170 1234567",
		"event_date": "2026-10-03",
		"event_type": "birthday",
		"event_start_time": "18:00",
		"event_end_time": "23:00",
		"number_of_guests": 40,
		"payment_method": "invoice",
		"extras": ["dj", "catering"],
		"price_estimate": 1200.5,
		"total_price": 1350,
		"signature": "data:image/png;base64,aGVsbG8="
	}`)

	sub, err := DecodeSubmission(raw)
	require.NoError(t, err)

	assert.Equal(t, "Anna Schmidt", sub.GuestName)
	assert.Equal(t, "anna@example.com", sub.GuestEmail)
	assert.Equal(t, "2026-10-03", sub.EventDate.Format("2006-01-02"))
	assert.Equal(t, 40, sub.NumberOfGuests)
	assert.Equal(t, []string{"dj", "catering"}, sub.Extras)
	require.NotNil(t, sub.PriceEstimate)
	assert.InDelta(t, 1200.5, *sub.PriceEstimate, 0.001)
	assert.NoError(t, sub.Validate())
}

func TestDecodeSubmission_LegacyShape(t *testing.T) {
	raw := []byte(`{
		"name": "Peter Lang",
		"email": "peter@example.com",
		"phone": "0170 7654321",
		"date": "2026-11-20",
		"type": "company",
		"start_time": "17:30",
		"end_time": "22:00",
		"guests": "25",
		"payment": "cash",
		"extras": "dj, projector",
		"price_estimate": "980,00",
		"total_price": "",
		"signature": "data:image/jpeg;base64,aGVsbG8="
	}`)

	sub, err := DecodeSubmission(raw)
	require.NoError(t, err)

	assert.Equal(t, "Peter Lang", sub.GuestName)
	assert.Equal(t, 25, sub.NumberOfGuests)
	assert.Equal(t, []string{"dj", "projector"}, sub.Extras)
	require.NotNil(t, sub.PriceEstimate)
	assert.InDelta(t, 980.0, *sub.PriceEstimate, 0.001)
	assert.Nil(t, sub.TotalPrice)
	assert.NoError(t, sub.Validate())
}

func TestDecodeSubmission_UnknownShape(t *testing.T) {
	_, err := DecodeSubmission([]byte(`{"foo": "bar"}`))
	assert.ErrorIs(t, err, ErrUnknownPayloadShape)
}

func TestDecodeSubmission_MalformedJSON(t *testing.T) {
	_, err := DecodeSubmission([]byte(`{not json`))
	assert.Error(t, err)
}

func TestSubmission_ValidateRejectsMissingFields(t *testing.T) {
	sub := Submission{GuestName: "X"}
	err := sub.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "guest_email")
	assert.Contains(t, err.Error(), "event_date")
	assert.Contains(t, err.Error(), "signature")
}

func TestDecodeSignatureDataURL(t *testing.T) {
	data, err := DecodeSignatureDataURL("data:image/png;base64,aGVsbG8=")
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), data)

	_, err = DecodeSignatureDataURL("data:text/plain;base64,aGVsbG8=")
	assert.ErrorIs(t, err, ErrInvalidSignature)

	_, err = DecodeSignatureDataURL("data:image/png;base64,!!!")
	assert.ErrorIs(t, err, ErrInvalidSignature)
}
