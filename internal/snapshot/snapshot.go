// Package snapshot exports and imports whole boards and fingerprints them.
package snapshot

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fxamacker/cbor/v2"
	"github.com/zeebo/blake3"
	"gopkg.in/yaml.v3"

	"github.com/thenoetrevino/ticketboard/internal/models"
)

// Version of the export layout
const Version = 1

// Board is an ordered export of every column
type Board struct {
	Version    int       `json:"version" yaml:"version" cbor:"1,keyasint"`
	ExportedAt time.Time `json:"exported_at" yaml:"exported_at" cbor:"2,keyasint"`
	Columns    []Column  `json:"columns" yaml:"columns" cbor:"3,keyasint"`
}

// Column holds one status column's tickets in chain order
type Column struct {
	Status  models.Status    `json:"status" yaml:"status" cbor:"1,keyasint"`
	Tickets []*models.Ticket `json:"tickets" yaml:"tickets" cbor:"2,keyasint"`
}

// NewBoard builds a Board from ordered columns. Every status appears, in
// board order, even when it has no tickets.
func NewBoard(columns map[models.Status][]*models.Ticket) *Board {
	b := &Board{Version: Version, ExportedAt: time.Now().UTC()}
	for _, st := range models.Statuses {
		tickets := columns[st]
		if tickets == nil {
			tickets = []*models.Ticket{}
		}
		b.Columns = append(b.Columns, Column{Status: st, Tickets: tickets})
	}
	return b
}

// Count returns the number of tickets in the board
func (b *Board) Count() int {
	n := 0
	for _, c := range b.Columns {
		n += len(c.Tickets)
	}
	return n
}

// Format is a snapshot encoding
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatCBOR Format = "cbor"
)

// ParseFormat accepts json, yaml/yml and cbor
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json", "":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "cbor":
		return FormatCBOR, nil
	default:
		return "", fmt.Errorf("unknown format '%s' (must be: json, yaml, cbor)", s)
	}
}

// FormatFromPath guesses the format from a file extension, defaulting to JSON
func FormatFromPath(path string) Format {
	switch {
	case strings.HasSuffix(path, ".yaml"), strings.HasSuffix(path, ".yml"):
		return FormatYAML
	case strings.HasSuffix(path, ".cbor"):
		return FormatCBOR
	default:
		return FormatJSON
	}
}

// encMode is deterministic so the same board always encodes to the same
// bytes; Digest depends on this.
var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error

	encOptions := cbor.CoreDetEncOptions()
	encOptions.Time = cbor.TimeRFC3339Nano
	encMode, err = encOptions.EncMode()
	if err != nil {
		panic("snapshot: CBOR encoder initialization failed: " + err.Error())
	}

	decMode, err = cbor.DecOptions{}.DecMode()
	if err != nil {
		panic("snapshot: CBOR decoder initialization failed: " + err.Error())
	}
}

// Encode writes b to w in the given format
func Encode(w io.Writer, b *Board, format Format) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(b)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(b); err != nil {
			return err
		}
		return enc.Close()
	case FormatCBOR:
		return encMode.NewEncoder(w).Encode(b)
	default:
		return fmt.Errorf("unknown format '%s'", format)
	}
}

// Decode reads a board from r in the given format
func Decode(r io.Reader, format Format) (*Board, error) {
	var b Board
	var err error
	switch format {
	case FormatJSON:
		err = json.NewDecoder(r).Decode(&b)
	case FormatYAML:
		err = yaml.NewDecoder(r).Decode(&b)
	case FormatCBOR:
		err = decMode.NewDecoder(r).Decode(&b)
	default:
		return nil, fmt.Errorf("unknown format '%s'", format)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s snapshot: %w", format, err)
	}
	if b.Version != Version {
		return nil, fmt.Errorf("unsupported snapshot version %d", b.Version)
	}
	return &b, nil
}

// digestTicket is the part of a ticket that identifies board content
type digestTicket struct {
	ID      string `cbor:"1,keyasint"`
	Title   string `cbor:"2,keyasint"`
	Content string `cbor:"3,keyasint"`
}

type digestColumn struct {
	Status  string         `cbor:"1,keyasint"`
	Tickets []digestTicket `cbor:"2,keyasint"`
}

// Digest fingerprints the board's columns, ticket order and ticket text as a
// hex BLAKE3 hash. Timestamps and export time are not part of it, so two
// boards with the same tickets in the same order share a digest.
func Digest(b *Board) (string, error) {
	columns := make([]digestColumn, 0, len(b.Columns))
	for _, c := range b.Columns {
		dc := digestColumn{Status: string(c.Status), Tickets: make([]digestTicket, 0, len(c.Tickets))}
		for _, t := range c.Tickets {
			dc.Tickets = append(dc.Tickets, digestTicket{ID: t.ID, Title: t.Title, Content: t.Content})
		}
		columns = append(columns, dc)
	}

	data, err := encMode.Marshal(columns)
	if err != nil {
		return "", fmt.Errorf("failed to encode board for digest: %w", err)
	}

	hasher := blake3.New()
	if _, err := hasher.Write(data); err != nil {
		return "", err
	}
	return hex.EncodeToString(hasher.Sum(nil)), nil
}
