package errors

import (
	"encoding/json"
	"fmt"

	log "github.com/sirupsen/logrus"
	grpccodes "google.golang.org/grpc/codes"
)

// Code is the type representing a namespace error code.
type Code[MT any] struct {
	Code     uint16
	Name     string
	GrpcCode grpccodes.Code
}

// New creates a new error with the given code and the message
func (c Code[MT]) New(msg string, args ...any) TypedError[MT] {
	return &ErrorImpl[MT]{
		code:  c,
		cause: fmt.Errorf(msg, args...),
	}
}

// Wrap creates a new Error with the given code and the cause error
func (c Code[MT]) Wrap(cause error) TypedError[MT] {
	return &ErrorImpl[MT]{
		code:  c,
		cause: cause,
	}
}

// Is reports whether err carries this code.
func (c Code[MT]) Is(err error) bool {
	marketErr, ok := err.(Error)
	if !ok {
		return false
	}
	return marketErr.Code() == c.Code
}

func (c Code[MT]) String() string {
	return fmt.Sprintf("%s (%d)", c.Name, c.Code)
}

type Error interface {
	error
	Log() *log.Entry
	Code() uint16
	CodeName() string
	GrpcCode() grpccodes.Code
	Metadata() map[string]string
}

type TypedError[MT any] interface {
	Error
	WithMetadata(MT) TypedError[MT]
}

// ErrorImpl is the default concrete implementation of TypedError.
type ErrorImpl[MT any] struct {
	code     Code[MT]
	cause    error
	metadata MT
}

func (e *ErrorImpl[MT]) Log() *log.Entry {
	return log.WithField("name", e.code.Name).
		WithField("code", e.code.Code).
		WithField("metadata", e.metadata)
}

func (e *ErrorImpl[MT]) Metadata() map[string]string {
	// convert any metadata to map[string]string
	metadata := make(map[string]string)
	buf, err := json.Marshal(e.metadata)
	if err == nil {
		var genericMap map[string]any
		if err := json.Unmarshal(buf, &genericMap); err == nil {
			for k, v := range genericMap {
				vStr := ""
				if v != nil {
					vStr = fmt.Sprintf("%v", v)
				}
				metadata[k] = vStr
			}
		}
	}
	return metadata
}

func (e *ErrorImpl[MT]) GrpcCode() grpccodes.Code {
	return e.code.GrpcCode
}

func (e *ErrorImpl[MT]) Code() uint16 {
	return e.code.Code
}

func (e *ErrorImpl[MT]) CodeName() string {
	return e.code.Name
}

// Error() implements the error interface.
func (e *ErrorImpl[MT]) Error() string {
	return fmt.Sprintf("%s: %s", e.code.String(), e.cause.Error())
}

func (e *ErrorImpl[MT]) WithMetadata(metadata MT) TypedError[MT] {
	e.metadata = metadata
	return e
}

type OfferMetadata struct {
	AssetID string `json:"asset_id"`
}

type BidMetadata struct {
	AssetID string `json:"asset_id"`
	Bidder  string `json:"bidder"`
}

type AmountMetadata struct {
	Amount   string `json:"amount"`
	Attached string `json:"attached"`
}

type BalanceMetadata struct {
	Account string `json:"account"`
	Amount  string `json:"amount"`
	Balance string `json:"balance"`
}

type ApprovalMetadata struct {
	AssetID  string `json:"asset_id"`
	Operator string `json:"operator"`
	Market   string `json:"market"`
}

type CallerMetadata struct {
	Caller string `json:"caller"`
}

type TransferMetadata struct {
	From    string `json:"from"`
	To      string `json:"to"`
	AssetID string `json:"asset_id"`
}

var INTERNAL_ERROR = Code[map[string]any]{0, "INTERNAL_ERROR", grpccodes.Internal}

var AUTHORIZATION_DENIED = Code[CallerMetadata]{
	1,
	"AUTHORIZATION_DENIED",
	grpccodes.PermissionDenied,
}

var INVALID_AMOUNT = Code[AmountMetadata]{2, "INVALID_AMOUNT", grpccodes.InvalidArgument}
var DUPLICATE_OFFER = Code[OfferMetadata]{3, "DUPLICATE_OFFER", grpccodes.AlreadyExists}

var OPERATOR_NOT_APPROVED = Code[ApprovalMetadata]{
	4,
	"OPERATOR_NOT_APPROVED",
	grpccodes.FailedPrecondition,
}

var INSUFFICIENT_BALANCE = Code[BalanceMetadata]{
	5,
	"INSUFFICIENT_BALANCE",
	grpccodes.FailedPrecondition,
}

var NOT_FOUND = Code[OfferMetadata]{6, "NOT_FOUND", grpccodes.NotFound}
var ALREADY_SOLD = Code[OfferMetadata]{7, "ALREADY_SOLD", grpccodes.FailedPrecondition}

var INVALID_TRANSFER = Code[TransferMetadata]{
	8,
	"INVALID_TRANSFER",
	grpccodes.InvalidArgument,
}
