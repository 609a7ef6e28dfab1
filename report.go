package main

import (
	"context"
	"fmt"
	"io"
	"log"

	"github.com/lylemi/tlscompare/internal/fingerprint"
)

const (
	uaWidth = 100
	tip     = "Tip: if A shows a typical Go/OpenSSL JA3 and B a browser JA3, the difference is obvious. " +
		"Heavily protected sites also look at other signals (cookies, JS, timings)."
)

// FetchFunc produces one fingerprint record. Setting up the client is part
// of the call so that setup failures stay inside the branch.
type FetchFunc func(ctx context.Context) (*fingerprint.Record, error)

// Section is one independent branch of the report.
type Section struct {
	Title string
	Name  string // used in error lines
	Fetch FetchFunc
}

// Reporter prints fingerprint records to out and failures to errOut.
type Reporter struct {
	out    io.Writer
	errLog *log.Logger
}

func NewReporter(out, errOut io.Writer) *Reporter {
	return &Reporter{out: out, errLog: log.New(errOut, "", 0)}
}

// Run reports every section in order. A failing section never stops the
// following ones.
func (r *Reporter) Run(ctx context.Context, sections []Section) {
	for _, s := range sections {
		fmt.Fprintf(r.out, "\n=== %s ===\n", s.Title)
		rec, err := r.fetch(ctx, s)
		if err != nil {
			r.errLog.Printf("Error %s: %v", s.Name, err)
			continue
		}
		r.printRecord(rec)
	}
	fmt.Fprintf(r.out, "\n%s\n", tip)
}

func (r *Reporter) fetch(ctx context.Context, s Section) (rec *fingerprint.Record, err error) {
	defer func() {
		if p := recover(); p != nil {
			rec, err = nil, fmt.Errorf("panic: %v", p)
		}
	}()
	rec, err = s.Fetch(ctx)
	if err == nil && rec == nil {
		err = fmt.Errorf("no record returned")
	}
	return rec, err
}

func (r *Reporter) printRecord(rec *fingerprint.Record) {
	d := fingerprint.Display
	fmt.Fprintf(r.out, "Client        : %s\n", rec.Client)
	fmt.Fprintf(r.out, "IP            : %s\n", d(rec.IP))
	fmt.Fprintf(r.out, "TLS version   : %s\n", d(rec.TLSVersion))
	fmt.Fprintf(r.out, "HTTP version  : %s\n", d(rec.HTTPVersion))
	fmt.Fprintf(r.out, "ALPN          : %s\n", d(rec.ALPN))
	fmt.Fprintf(r.out, "User-Agent    : %s\n", fingerprint.Shorten(d(rec.UserAgent), uaWidth))
	fmt.Fprintf(r.out, "JA3           : %s\n", d(rec.JA3))
	fmt.Fprintf(r.out, "Diagnostic    : %s\n", fingerprint.Verdict(rec.UserAgent, rec.JA3))
}
