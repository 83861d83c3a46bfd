package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/couchcryptid/event-advisor/internal/assess"
	"github.com/couchcryptid/event-advisor/internal/domain"
	"github.com/couchcryptid/event-advisor/internal/prediction"
)

// session drives one interactive run: a single event checked against as
// many models as the user asks for.
type session struct {
	in       *bufio.Scanner
	out      io.Writer
	assessor assess.Assessor
}

func newSession(in io.Reader, out io.Writer, assessor assess.Assessor) *session {
	return &session{in: bufio.NewScanner(in), out: out, assessor: assessor}
}

func (s *session) run(ctx context.Context) error {
	s.println("Let's determine how suitable your event is for the predicted weather.")

	event, err := s.eventDetails()
	if err != nil {
		return err
	}

	for {
		kind, days, err := s.model()
		if err != nil {
			return err
		}

		a, err := s.assessor.Assess(ctx, assess.Request{Event: event, Model: kind, Days: days})
		if err != nil {
			return err
		}
		s.printf("Based on the %s model, the advisability of holding %s is %s.\n",
			a.ModelName, a.Event.Name, formatScore(a.Advisability))

		s.println("\nWould you like to try using a different weather prediction model?")
		again, err := s.yesNo("", "Please enter 'Y' or 'Yes' or 'N' or 'No'.")
		if err != nil {
			return err
		}
		if !again {
			return nil
		}
	}
}

func (s *session) eventDetails() (domain.Event, error) {
	var (
		e   domain.Event
		err error
	)
	if e.Name, err = s.ask("What is the name of the event? "); err != nil {
		return e, err
	}
	if e.Outdoors, err = s.yesNo("Is the event outdoors? ", "Please enter a valid value."); err != nil {
		return e, err
	}
	if e.CoverAvailable, err = s.yesNo("Is there covered shelter? ", "Please enter a valid value."); err != nil {
		return e, err
	}
	for {
		answer, err := s.ask("What time is the event? ")
		if err != nil {
			return e, err
		}
		hour, convErr := strconv.Atoi(answer)
		switch {
		case convErr != nil || strings.HasPrefix(answer, "-") || strings.HasPrefix(answer, "+"):
			s.println("Please enter an integer time value.")
		case hour > 23:
			s.println("Please enter an integer time value from 0 up to, but not including 24.")
		default:
			e.Hour = hour
			return e, nil
		}
	}
}

func (s *session) model() (prediction.Kind, int, error) {
	for {
		s.println("Select the weather prediction model you wish to use:")
		for i, k := range prediction.Kinds {
			s.printf("  %d) %s.\n", i+1, k.DisplayName())
		}
		choice, err := s.ask("> ")
		if err != nil {
			return "", 0, err
		}
		kind, err := prediction.ParseKind(choice)
		if err != nil {
			s.println("\nPlease enter an existing model!\n")
			continue
		}
		if !kind.UsesWindow() {
			return kind, 1, nil
		}
		days, err := s.days()
		return kind, days, err
	}
}

func (s *session) days() (int, error) {
	for {
		answer, err := s.ask("Enter how many days of data you wish to use for making the prediction: ")
		if err != nil {
			return 0, err
		}
		if n, err := strconv.Atoi(answer); err == nil && n >= 1 {
			return n, nil
		}
		s.println("Please enter a whole number of days, at least 1.")
	}
}

// yesNo re-prompts until the answer is y, yes, n or no in any case.
func (s *session) yesNo(prompt, retry string) (bool, error) {
	for {
		answer, err := s.ask(prompt)
		if err != nil {
			return false, err
		}
		switch strings.ToLower(answer) {
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		s.println(retry)
	}
}

// ask prints the prompt and returns the next trimmed line, or io.EOF when
// input runs out.
func (s *session) ask(prompt string) (string, error) {
	if prompt != "" {
		fmt.Fprint(s.out, prompt)
	}
	if !s.in.Scan() {
		if err := s.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(s.in.Text()), nil
}

func (s *session) println(msg string) { fmt.Fprintln(s.out, msg) }

func (s *session) printf(format string, args ...any) { fmt.Fprintf(s.out, format, args...) }

// formatScore always shows a decimal point, so 2 prints as 2.0.
func formatScore(v float64) string {
	if v == math.Trunc(v) {
		return strconv.FormatFloat(v, 'f', 1, 64)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
