package cli

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/thenoetrevino/ticketboard/internal/models"
)

// OutputFormatter handles three output modes: JSON, quiet, and human-readable
type OutputFormatter struct {
	JSON  bool
	Quiet bool
}

// Success outputs successful operation result
func (f *OutputFormatter) Success(data any) error {
	if f.Quiet {
		switch v := data.(type) {
		case interface{ GetID() string }:
			fmt.Println(v.GetID())
			return nil
		case []*models.Ticket:
			for _, t := range v {
				fmt.Println(t.ID)
			}
			return nil
		}
	}

	if f.JSON {
		return json.NewEncoder(os.Stdout).Encode(map[string]any{
			"success": true,
			"data":    data,
		})
	}

	// Human-readable format
	return f.prettyPrint(data)
}

// Error outputs error information
func (f *OutputFormatter) Error(code string, message string) error {
	return f.ErrorWithSuggestion(code, message, "")
}

// ErrorWithSuggestion outputs error information with an optional suggestion
func (f *OutputFormatter) ErrorWithSuggestion(code string, message string, suggestion string) error {
	if f.JSON {
		errData := map[string]any{
			"code":    code,
			"message": message,
		}
		if suggestion != "" {
			errData["suggestion"] = suggestion
		}
		return json.NewEncoder(os.Stdout).Encode(map[string]any{
			"success": false,
			"error":   errData,
		})
	}

	// Human-readable error
	fmt.Fprintf(os.Stderr, "❌ Error: %s\n", message)
	if suggestion != "" {
		fmt.Fprintf(os.Stderr, "💡 Suggestion: %s\n", suggestion)
	}
	return nil
}

// Fail reports err in the current output mode and returns it as an
// *ExitError carrying the matching exit code
func (f *OutputFormatter) Fail(err error) error {
	return f.FailWithSuggestion(err, suggestionFor(err))
}

// FailWithSuggestion is Fail with an explicit suggestion
func (f *OutputFormatter) FailWithSuggestion(err error, suggestion string) error {
	code, exit := Classify(err)
	if fmtErr := f.ErrorWithSuggestion(code, err.Error(), suggestion); fmtErr != nil {
		slog.Error("failed to format error message", "error", fmtErr)
	}
	return &ExitError{Code: exit, Err: err, Reported: true}
}

func suggestionFor(err error) string {
	switch code, _ := Classify(err); code {
	case "TICKET_NOT_FOUND":
		return "List tickets with: ticketboard ticket list"
	case "INVARIANT_VIOLATION":
		return "Inspect the board with: ticketboard board check"
	case "BOARD_NOT_EMPTY":
		return "Import into a fresh database (set TICKETBOARD_DB)"
	}
	return ""
}

// prettyPrint formats data for human-readable output
func (f *OutputFormatter) prettyPrint(data any) error {
	switch v := data.(type) {
	case nil:
		return nil
	case fmt.Stringer:
		fmt.Println(v.String())
	default:
		fmt.Printf("%+v\n", data)
	}
	return nil
}
