package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	grpccodes "google.golang.org/grpc/codes"
)

func generateErrorFixtures() []Error {
	return []Error{
		INTERNAL_ERROR.New("store unavailable").
			WithMetadata(map[string]any{
				"component": "balance store",
				"operation": "credit",
			}),

		AUTHORIZATION_DENIED.New("caller is not the offer seller").
			WithMetadata(CallerMetadata{Caller: "0xc0ffee"}),

		INVALID_AMOUNT.New("attached funds do not match amount").
			WithMetadata(AmountMetadata{Amount: "2000000000000000000", Attached: "0"}),

		DUPLICATE_OFFER.New("asset already listed").
			WithMetadata(OfferMetadata{AssetID: "asset-1"}),

		OPERATOR_NOT_APPROVED.New("marketplace is not the approved operator").
			WithMetadata(ApprovalMetadata{
				AssetID:  "asset-1",
				Operator: "0xdead",
				Market:   "0xmarket",
			}),

		INSUFFICIENT_BALANCE.New("debit exceeds balance").
			WithMetadata(BalanceMetadata{
				Account: "0xbuyer",
				Amount:  "2000000000000000000",
				Balance: "1000000000000000000",
			}),

		NOT_FOUND.New("no offer for asset").
			WithMetadata(OfferMetadata{AssetID: "asset-2"}),

		ALREADY_SOLD.New("offer is terminal").
			WithMetadata(OfferMetadata{AssetID: "asset-3"}),

		INVALID_TRANSFER.New("new owner is the null address").
			WithMetadata(TransferMetadata{From: "0xowner", To: ""}),
	}
}

func TestErrorFixtures(t *testing.T) {
	for _, err := range generateErrorFixtures() {
		require.NotNil(t, err)
		require.NotEmpty(t, err.Error())
		require.NotEmpty(t, err.CodeName())
		require.NotNil(t, err.Log())
		require.NotNil(t, err.Metadata())
	}
}

func TestErrorCodes(t *testing.T) {
	err := ALREADY_SOLD.New("offer for asset %s is terminal", "asset-1")
	require.Equal(t, uint16(7), err.Code())
	require.Equal(t, "ALREADY_SOLD", err.CodeName())
	require.Equal(t, grpccodes.FailedPrecondition, err.GrpcCode())
	require.True(t, ALREADY_SOLD.Is(err))
	require.False(t, NOT_FOUND.Is(err))
	require.False(t, ALREADY_SOLD.Is(fmt.Errorf("plain error")))
}

func TestErrorMetadata(t *testing.T) {
	err := INSUFFICIENT_BALANCE.New("debit exceeds balance").
		WithMetadata(BalanceMetadata{Account: "0xbuyer", Amount: "10", Balance: "4"})

	metadata := err.Metadata()
	require.Equal(t, "0xbuyer", metadata["account"])
	require.Equal(t, "10", metadata["amount"])
	require.Equal(t, "4", metadata["balance"])
}

func TestWrap(t *testing.T) {
	cause := fmt.Errorf("registry unreachable")
	err := INTERNAL_ERROR.Wrap(cause)
	require.Contains(t, err.Error(), "INTERNAL_ERROR")
	require.Contains(t, err.Error(), "registry unreachable")
}
