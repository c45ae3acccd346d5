package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/gompdf/gominvoice"
)

// stringList collects a repeatable flag.
type stringList []string

func (s *stringList) String() string { return strings.Join(*s, ", ") }

func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

type cli struct {
	config    string
	student   string
	courses   stringList
	hours     string
	items     stringList
	rate      float64
	number    string
	date      string
	outputDir string
	tax       string
	numbering string
	verbose   bool
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run parses args, generates one invoice and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	var c cli
	fs := flag.NewFlagSet("gominvoice", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&c.config, "config", "", "House configuration YAML file")
	fs.StringVar(&c.student, "student", "", "Student name")
	fs.Var(&c.courses, "course", "Course description (repeatable, parallel to -hours)")
	fs.StringVar(&c.hours, "hours", "", "Comma separated hours, one per -course")
	fs.Var(&c.items, "item", "Line item as \"description=hours\" (repeatable)")
	fs.Float64Var(&c.rate, "rate", 0, "Hourly rate")
	fs.StringVar(&c.number, "number", "", "Invoice number (default generated)")
	fs.StringVar(&c.date, "date", "", "Invoice date (default today)")
	fs.StringVar(&c.outputDir, "output-dir", "", "Output directory")
	fs.StringVar(&c.tax, "tax", "", "Tax rate as a fraction, e.g. 0.15")
	fs.StringVar(&c.numbering, "numbering", "", "Invoice numbering: timestamp or uuid")
	fs.BoolVar(&c.verbose, "verbose", false, "Enable verbose logging")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	logger := logrus.New()
	logger.SetOutput(stderr)
	logger.SetLevel(logrus.WarnLevel)
	if c.verbose {
		logger.SetLevel(logrus.DebugLevel)
	}

	res, err := c.generate(logger)
	if err != nil {
		logger.WithError(err).Error("invoice generation failed")
		switch {
		case errors.Is(err, gominvoice.ErrValidation):
			return 1
		case errors.Is(err, gominvoice.ErrIO):
			return 3
		case errors.Is(err, gominvoice.ErrRender):
			return 4
		default:
			return 2
		}
	}

	fmt.Fprintf(stdout, "%s\nTotal: %s\n", res.Filename, res.Total)
	return 0
}

func (c *cli) generate(logger logrus.FieldLogger) (*gominvoice.Result, error) {
	opts := []gominvoice.Option{gominvoice.WithLogger(logger), gominvoice.WithDebug(c.verbose)}
	if c.config != "" {
		opt, err := gominvoice.LoadConfig(c.config)
		if err != nil {
			return nil, err
		}
		opts = append(opts, opt)
	}
	if c.tax != "" {
		rate, err := decimal.NewFromString(c.tax)
		if err != nil {
			return nil, &gominvoice.ValidationError{Field: "tax_rate", Message: fmt.Sprintf("%q is not a number", c.tax)}
		}
		opts = append(opts, gominvoice.WithTaxRate(rate))
	}
	if c.numbering != "" {
		n := gominvoice.Numbering(c.numbering)
		if !n.Valid() {
			return nil, &gominvoice.ValidationError{Field: "numbering", Message: fmt.Sprintf("unknown scheme %q", c.numbering)}
		}
		opts = append(opts, gominvoice.WithNumbering(n))
	}
	if c.outputDir != "" {
		opts = append(opts, gominvoice.WithOutputDir(c.outputDir))
	}

	req, err := c.request()
	if err != nil {
		return nil, err
	}
	return gominvoice.New().WithOption(opts...).Generate(req)
}

// request maps flags onto a request. -item entries and -course/-hours pairs are
// mutually exclusive, matching the request itself.
func (c *cli) request() (gominvoice.Request, error) {
	req := gominvoice.Request{
		Student: c.student,
		Courses: c.courses,
		Rate:    c.rate,
		Number:  c.number,
		Date:    c.date,
	}

	if c.hours != "" {
		for _, field := range strings.Split(c.hours, ",") {
			h, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
			if err != nil {
				return req, &gominvoice.ValidationError{Field: "hours", Message: fmt.Sprintf("%q is not a number", field)}
			}
			req.Hours = append(req.Hours, h)
		}
	}

	for _, item := range c.items {
		i := strings.LastIndex(item, "=")
		if i <= 0 {
			return req, &gominvoice.ValidationError{Field: "item", Message: fmt.Sprintf("%q: want description=hours", item)}
		}
		h, err := strconv.ParseFloat(strings.TrimSpace(item[i+1:]), 64)
		if err != nil {
			return req, &gominvoice.ValidationError{Field: "item", Message: fmt.Sprintf("%q: hours is not a number", item)}
		}
		req.Entries = append(req.Entries, gominvoice.Entry{Description: strings.TrimSpace(item[:i]), Hours: h})
	}
	return req, nil
}
