package ledger

import (
	"encoding/binary"
	"encoding/hex"
	"strconv"
	"strings"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/goodnatureofminers/donationledger-backend/internal/clock"
	"github.com/goodnatureofminers/donationledger-backend/internal/model"
	"github.com/shopspring/decimal"
)

const (
	// SchemaVersion tags the canonical payload encoding. Bump it whenever the sealed field set changes.
	SchemaVersion = "donationledger/block/v1"
	// DigestLength is the length of a hex encoded transaction hash.
	DigestLength = 2 * chainhash.HashSize

	amountScale         = 2
	timestampLayout     = "2006-01-02T15:04:05.000Z"
	timestampNanoLayout = "2006-01-02T15:04:05.000000000Z"
)

// GenesisHash is the previous hash of block 1.
var GenesisHash = strings.Repeat("0", DigestLength)

// Payload holds the sealed identity fields of a block.
type Payload struct {
	BlockNumber   uint64
	DonorID       string
	DonorName     string
	RecipientID   string
	RecipientName string
	Amount        decimal.Decimal
	Timestamp     time.Time
	PreviousHash  string
}

type payloadField struct {
	name  string
	value string
}

// fields enumerates the sealed fields in their canonical order.
func (p Payload) fields() []payloadField {
	return []payloadField{
		{name: "blockNumber", value: strconv.FormatUint(p.BlockNumber, 10)},
		{name: "donorRef", value: p.DonorID},
		{name: "donorDisplayName", value: p.DonorName},
		{name: "recipientRef", value: p.RecipientID},
		{name: "recipientDisplayName", value: p.RecipientName},
		{name: "amount", value: encodeAmount(p.Amount)},
		{name: "timestamp", value: encodeTimestamp(p.Timestamp)},
		{name: "previousHash", value: p.PreviousHash},
	}
}

// Canonical returns the byte encoding that is hashed: the schema tag followed by
// every field name and value, each prefixed with its uvarint length.
func (p Payload) Canonical() []byte {
	buf := make([]byte, 0, 256)
	buf = appendLengthPrefixed(buf, SchemaVersion)
	for _, f := range p.fields() {
		buf = appendLengthPrefixed(buf, f.name)
		buf = appendLengthPrefixed(buf, f.value)
	}
	return buf
}

// encodeAmount writes amounts at cent scale. A value carrying digits below a cent keeps
// them all, so it never encodes like any cent-scale amount.
func encodeAmount(d decimal.Decimal) string {
	if d.Equal(d.Truncate(amountScale)) {
		return d.StringFixed(amountScale)
	}
	return d.String()
}

// encodeTimestamp writes instants in UTC at millisecond precision, or at nanosecond
// precision when the instant carries sub-millisecond digits.
func encodeTimestamp(t time.Time) string {
	t = t.UTC()
	if t.Equal(clock.Truncate(t)) {
		return t.Format(timestampLayout)
	}
	return t.Format(timestampNanoLayout)
}

func appendLengthPrefixed(buf []byte, s string) []byte {
	buf = binary.AppendUvarint(buf, uint64(len(s)))
	return append(buf, s...)
}

// HashPayload returns the hex SHA-256 digest of the canonical payload.
func HashPayload(p Payload) string {
	return hex.EncodeToString(chainhash.HashB(p.Canonical()))
}

// PayloadOf extracts the sealed fields of a block.
func PayloadOf(b model.Block) Payload {
	return Payload{
		BlockNumber:   b.Number,
		DonorID:       b.DonorID,
		DonorName:     b.DonorName,
		RecipientID:   b.RecipientID,
		RecipientName: b.RecipientName,
		Amount:        b.Amount,
		Timestamp:     b.Timestamp,
		PreviousHash:  b.PreviousHash,
	}
}

// Seal computes the transaction hash of a block from its stored fields.
func Seal(b model.Block) string {
	return HashPayload(PayloadOf(b))
}
