package ui

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	domainErrors "github.com/thomas-vilte/matereview/internal/errors"
)

var (
	// Colors for different message types
	Success = color.New(color.FgGreen, color.Bold)
	Error   = color.New(color.FgRed, color.Bold)
	Warning = color.New(color.FgYellow, color.Bold)
	Info    = color.New(color.FgCyan, color.Bold)
	Dim     = color.New(color.FgHiBlack)

	MateEmoji    = "🧉"
	SuccessEmoji = Success.Sprint("✅")
	WarningEmoji = Warning.Sprint("⚠️")
	InfoEmoji    = Info.Sprint("ℹ️")
)

// Interactive reports whether stdout is a terminal outside a CI job. In CI
// the spinner is suppressed so job logs stay clean.
func Interactive() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) && os.Getenv("CI") == ""
}

// SmartSpinner is a progress spinner that turns into plain log lines when
// the run is not interactive.
type SmartSpinner struct {
	spinner *spinner.Spinner
	quiet   bool
}

// NewSmartSpinner creates a new spinner with an initial message
func NewSmartSpinner(initialMessage string) *SmartSpinner {
	if !Interactive() {
		fmt.Println(initialMessage)
		return &SmartSpinner{quiet: true}
	}
	s := spinner.New(
		spinner.CharSets[14],
		100*time.Millisecond,
		spinner.WithColor("cyan"),
		spinner.WithSuffix(" "+MateEmoji+" "+initialMessage),
	)
	return &SmartSpinner{spinner: s}
}

func (s *SmartSpinner) Start() {
	if s.quiet {
		return
	}
	s.spinner.Start()
}

func (s *SmartSpinner) Stop() {
	if s.quiet {
		return
	}
	s.spinner.Stop()
}

func (s *SmartSpinner) UpdateMessage(msg string) {
	if s.quiet {
		fmt.Println(msg)
		return
	}
	s.spinner.Suffix = " " + msg
}

func (s *SmartSpinner) Success(msg string) {
	s.Stop()
	PrintSuccess(os.Stdout, msg)
}

func (s *SmartSpinner) Error(msg string) {
	s.Stop()
	PrintError(os.Stdout, msg)
}

func (s *SmartSpinner) Warning(msg string) {
	s.Stop()
	PrintWarning(msg)
}

func PrintSuccess(w io.Writer, msg string) {
	_, _ = fmt.Fprintf(w, "%s %s\n", SuccessEmoji, Success.Sprint(msg))
}

func PrintError(w io.Writer, msg string) {
	_, _ = fmt.Fprintf(w, "%s %s\n", Error.Sprint("❌"), Error.Sprint(msg))
}

func PrintWarning(msg string) {
	fmt.Printf("%s %s\n", WarningEmoji, Warning.Sprint(msg))
}

func PrintInfo(msg string) {
	fmt.Printf("%s %s\n", InfoEmoji, Info.Sprint(msg))
}

// HandleAppError displays an error in a friendly way, surfacing the
// suggestion when the error is a domain AppError.
func HandleAppError(err error) {
	if err == nil {
		return
	}

	var appErr *domainErrors.AppError
	if errors.As(err, &appErr) {
		PrintError(os.Stdout, appErr.Message)
		if appErr.Err != nil {
			fmt.Printf("%s\n", Dim.Sprintf("  cause: %v", appErr.Err))
		}
		if appErr.Suggestion != "" {
			fmt.Printf("\n%s %s\n", Info.Sprint("💡"), appErr.Suggestion)
		}
		return
	}

	PrintError(os.Stdout, err.Error())
}
