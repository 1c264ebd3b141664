package tx

import "fmt"

// Result represents a transaction result code
type Result int

// Transaction result codes.
// These are organized by category: tes, tec, tef, tem
const (
	// tesSUCCESS (0)
	TesSUCCESS Result = 0

	// tec codes (100-199)
	// The transaction was rejected against the current state; nothing is applied.
	TecNO_AUCTION            Result = 100
	TecNO_OFFER              Result = 101
	TecNO_PERMISSION         Result = 102
	TecPAUSED                Result = 103
	TecSELF_ACCEPT           Result = 104
	TecROYALTY_OVERFLOW      Result = 105
	TecPAST_DEADLINE         Result = 106
	TecNOT_STARTED           Result = 107
	TecEXPIRED               Result = 108
	TecNOT_ENDED             Result = 109
	TecWRONG_PAYMENT         Result = 110
	TecASSET_MISMATCH        Result = 111
	TecNOT_WHITELISTED       Result = 112
	TecSELF_BID              Result = 113
	TecREPEAT_BID            Result = 114
	TecBID_TOO_LOW           Result = 115
	TecBID_NOT_INCREASING    Result = 116
	TecBID_ABOVE_MAX         Result = 117
	TecINCREMENT_TOO_SMALL   Result = 118
	TecWRONG_AUCTION_TYPE    Result = 119
	TecAUCTION_ACTIVE        Result = 120
	TecDUPLICATE_OFFER       Result = 121
	TecBAD_START_TIME        Result = 122
	TecINSUFFICIENT_QUANTITY Result = 123
	TecWRONG_PAYMENT_AMOUNT  Result = 124
	TecUNFUNDED              Result = 125
	TecHAS_BIDS              Result = 126

	// tef codes (-199 to -100)
	// Internal failure, state unchanged
	TefFAILURE    Result = -199
	TefBAD_LEDGER Result = -195
	TefINTERNAL   Result = -192

	// tem codes (-299 to -200)
	// Malformed transaction
	TemMALFORMED        Result = -299
	TemBAD_AMOUNT       Result = -298
	TemBAD_ASSET        Result = -297
	TemBAD_PRICE        Result = -296
	TemBAD_QUANTITY     Result = -295
	TemBAD_DEADLINE     Result = -294
	TemBAD_CUT          Result = -293
	TemBAD_SRC_ACCOUNT  Result = -281
	TemINVALID          Result = -277
	TemDISABLED         Result = -273
	TemUNKNOWN          Result = -264
	TemBAD_PAYMENT      Result = -263
	TemBAD_AUCTION_TYPE Result = -262
)

var resultNames = map[Result]string{
	TesSUCCESS: "tesSUCCESS",

	TecNO_AUCTION:            "tecNO_AUCTION",
	TecNO_OFFER:              "tecNO_OFFER",
	TecNO_PERMISSION:         "tecNO_PERMISSION",
	TecPAUSED:                "tecPAUSED",
	TecSELF_ACCEPT:           "tecSELF_ACCEPT",
	TecROYALTY_OVERFLOW:      "tecROYALTY_OVERFLOW",
	TecPAST_DEADLINE:         "tecPAST_DEADLINE",
	TecNOT_STARTED:           "tecNOT_STARTED",
	TecEXPIRED:               "tecEXPIRED",
	TecNOT_ENDED:             "tecNOT_ENDED",
	TecWRONG_PAYMENT:         "tecWRONG_PAYMENT",
	TecASSET_MISMATCH:        "tecASSET_MISMATCH",
	TecNOT_WHITELISTED:       "tecNOT_WHITELISTED",
	TecSELF_BID:              "tecSELF_BID",
	TecREPEAT_BID:            "tecREPEAT_BID",
	TecBID_TOO_LOW:           "tecBID_TOO_LOW",
	TecBID_NOT_INCREASING:    "tecBID_NOT_INCREASING",
	TecBID_ABOVE_MAX:         "tecBID_ABOVE_MAX",
	TecINCREMENT_TOO_SMALL:   "tecINCREMENT_TOO_SMALL",
	TecWRONG_AUCTION_TYPE:    "tecWRONG_AUCTION_TYPE",
	TecAUCTION_ACTIVE:        "tecAUCTION_ACTIVE",
	TecDUPLICATE_OFFER:       "tecDUPLICATE_OFFER",
	TecBAD_START_TIME:        "tecBAD_START_TIME",
	TecINSUFFICIENT_QUANTITY: "tecINSUFFICIENT_QUANTITY",
	TecWRONG_PAYMENT_AMOUNT:  "tecWRONG_PAYMENT_AMOUNT",
	TecUNFUNDED:              "tecUNFUNDED",
	TecHAS_BIDS:              "tecHAS_BIDS",

	TefFAILURE:    "tefFAILURE",
	TefBAD_LEDGER: "tefBAD_LEDGER",
	TefINTERNAL:   "tefINTERNAL",

	TemMALFORMED:        "temMALFORMED",
	TemBAD_AMOUNT:       "temBAD_AMOUNT",
	TemBAD_ASSET:        "temBAD_ASSET",
	TemBAD_PRICE:        "temBAD_PRICE",
	TemBAD_QUANTITY:     "temBAD_QUANTITY",
	TemBAD_DEADLINE:     "temBAD_DEADLINE",
	TemBAD_CUT:          "temBAD_CUT",
	TemBAD_SRC_ACCOUNT:  "temBAD_SRC_ACCOUNT",
	TemINVALID:          "temINVALID",
	TemDISABLED:         "temDISABLED",
	TemUNKNOWN:          "temUNKNOWN",
	TemBAD_PAYMENT:      "temBAD_PAYMENT",
	TemBAD_AUCTION_TYPE: "temBAD_AUCTION_TYPE",
}

var resultsByName = func() map[string]Result {
	m := make(map[string]Result, len(resultNames))
	for r, name := range resultNames {
		m[name] = r
	}
	return m
}()

// String returns the string representation of the result code
func (r Result) String() string {
	if name, ok := resultNames[r]; ok {
		return name
	}
	return fmt.Sprintf("Unknown(%d)", int(r))
}

// ResultFromName returns the result code for a token such as "tecNO_AUCTION".
func ResultFromName(name string) (Result, bool) {
	r, ok := resultsByName[name]
	return r, ok
}

// MarshalText renders the code by name.
func (r Result) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// IsSuccess returns true if the result indicates success
func (r Result) IsSuccess() bool {
	return r == TesSUCCESS
}

// IsTec returns true if this is a tec (rejected against state) code
func (r Result) IsTec() bool {
	return r >= 100 && r < 200
}

// IsTef returns true if this is a tef (failure) code
func (r Result) IsTef() bool {
	return r >= -199 && r <= -100
}

// IsTem returns true if this is a tem (malformed) code
func (r Result) IsTem() bool {
	return r >= -299 && r <= -200
}

// IsApplied returns true if the transaction changed state.
// Unlike a ledger, the marketplace never applies a tec result.
func (r Result) IsApplied() bool {
	return r.IsSuccess()
}

// Kind groups result codes into the caller-facing error categories.
type Kind int

const (
	KindNone Kind = iota
	KindNotFound
	KindNotAuthorized
	KindInvalidParameters
	KindRoyaltyOverflow
	KindTimingViolation
	KindWrongAsset
	KindBidRuleViolation
	KindInsufficientQuantity
	KindAuctionHasBids
	KindInternal
)

var kindNames = [...]string{
	KindNone:                 "None",
	KindNotFound:             "NotFound",
	KindNotAuthorized:        "NotAuthorized",
	KindInvalidParameters:    "InvalidParameters",
	KindRoyaltyOverflow:      "RoyaltyOverflow",
	KindTimingViolation:      "TimingViolation",
	KindWrongAsset:           "WrongAsset",
	KindBidRuleViolation:     "BidRuleViolation",
	KindInsufficientQuantity: "InsufficientQuantity",
	KindAuctionHasBids:       "AuctionHasBids",
	KindInternal:             "Internal",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Kind returns the category of the result.
func (r Result) Kind() Kind {
	switch r {
	case TesSUCCESS:
		return KindNone
	case TecNO_AUCTION, TecNO_OFFER:
		return KindNotFound
	case TecNO_PERMISSION, TecPAUSED, TecSELF_ACCEPT:
		return KindNotAuthorized
	case TecROYALTY_OVERFLOW:
		return KindRoyaltyOverflow
	case TecPAST_DEADLINE, TecNOT_STARTED, TecEXPIRED, TecNOT_ENDED:
		return KindTimingViolation
	case TecWRONG_PAYMENT, TecASSET_MISMATCH, TecNOT_WHITELISTED:
		return KindWrongAsset
	case TecSELF_BID, TecREPEAT_BID, TecBID_TOO_LOW, TecBID_NOT_INCREASING,
		TecBID_ABOVE_MAX, TecINCREMENT_TOO_SMALL:
		return KindBidRuleViolation
	case TecWRONG_AUCTION_TYPE, TecAUCTION_ACTIVE, TecDUPLICATE_OFFER, TecBAD_START_TIME:
		return KindInvalidParameters
	case TecINSUFFICIENT_QUANTITY, TecWRONG_PAYMENT_AMOUNT, TecUNFUNDED:
		return KindInsufficientQuantity
	case TecHAS_BIDS:
		return KindAuctionHasBids
	}
	switch {
	case r.IsTem():
		return KindInvalidParameters
	default:
		return KindInternal
	}
}

// Message returns a human-readable message for the result
func (r Result) Message() string {
	switch r {
	case TesSUCCESS:
		return "The transaction was applied."
	case TecNO_AUCTION:
		return "No auction with this id."
	case TecNO_OFFER:
		return "No offer with this id."
	case TecNO_PERMISSION:
		return "The caller is not allowed to perform this operation."
	case TecPAUSED:
		return "The marketplace is paused."
	case TecSELF_ACCEPT:
		return "An offer cannot be accepted by its offeror."
	case TecROYALTY_OVERFLOW:
		return "Creator royalty and marketplace cut exceed the price."
	case TecPAST_DEADLINE:
		return "The auction deadline has passed."
	case TecNOT_STARTED:
		return "The auction has not started yet."
	case TecEXPIRED:
		return "The offer has expired."
	case TecNOT_ENDED:
		return "The auction cannot be ended yet."
	case TecWRONG_PAYMENT:
		return "The payment token does not match."
	case TecASSET_MISMATCH:
		return "The delivered asset does not match."
	case TecNOT_WHITELISTED:
		return "The payment token is not whitelisted."
	case TecSELF_BID:
		return "Sellers cannot bid on their own auction."
	case TecREPEAT_BID:
		return "The caller already holds the highest bid."
	case TecBID_TOO_LOW:
		return "The bid is below the minimum price."
	case TecBID_NOT_INCREASING:
		return "The bid does not exceed the current bid."
	case TecBID_ABOVE_MAX:
		return "The bid is above the maximum price."
	case TecINCREMENT_TOO_SMALL:
		return "The bid does not meet the minimum increment."
	case TecWRONG_AUCTION_TYPE:
		return "The operation does not apply to this auction kind."
	case TecAUCTION_ACTIVE:
		return "An auction for this asset is still live."
	case TecDUPLICATE_OFFER:
		return "An offer for this asset and payment token already exists."
	case TecBAD_START_TIME:
		return "The start time is in the past."
	case TecINSUFFICIENT_QUANTITY:
		return "Not enough units left in the auction."
	case TecWRONG_PAYMENT_AMOUNT:
		return "The payment does not equal the purchase price."
	case TecUNFUNDED:
		return "Insufficient balance to attach the payment."
	case TecHAS_BIDS:
		return "The auction already has a bid."
	case TefINTERNAL, TefBAD_LEDGER, TefFAILURE:
		return "Internal failure, state unchanged."
	case TemBAD_SRC_ACCOUNT:
		return "The source account is malformed."
	case TemBAD_AMOUNT:
		return "Can only send positive amounts."
	case TemBAD_ASSET:
		return "The asset or token identifier is malformed."
	case TemDISABLED:
		return "The transaction requires an amendment that is not enabled."
	case TemUNKNOWN:
		return "Unknown transaction type."
	case TemBAD_PAYMENT:
		return "This transaction does not accept a payment."
	case TemINVALID:
		return "The transaction is ill-formed."
	default:
		return r.String()
	}
}
