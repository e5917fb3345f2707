package fastx

import (
	"bufio"
	"errors"
	"io"
	"strings"
)

var (
	// ErrShort is returned when a truncated FASTQ record is encountered.
	ErrShort = errors.New("short FASTX file")
	// ErrInvalid is returned when an invalid record header is encountered.
	ErrInvalid = errors.New("invalid FASTX file")
	// ErrMismatch is returned when a FASTQ record's sequence and quality
	// lines have different lengths.
	ErrMismatch = errors.New("FASTQ sequence/quality length mismatch")
)

// A Record is a single FASTA or FASTQ record. FASTQ records carry all
// four fields; FASTA records have an ID beginning with ">", a sequence,
// and empty Unk and Qual fields.
type Record struct {
	ID, Seq, Unk, Qual string
}

// IsFASTA reports whether the record came from FASTA input, i.e.
// carries no quality track.
func (r *Record) IsFASTA() bool {
	return len(r.ID) > 0 && r.ID[0] == '>'
}

// TrimEnds removes start leading and end trailing bases from the
// sequence and quality tracks. Trims that meet or exceed the sequence
// length leave an empty read.
func (r *Record) TrimEnds(start, end int) {
	if start+end >= len(r.Seq) {
		r.Seq = ""
		r.Qual = ""
		return
	}
	r.Seq = r.Seq[start : len(r.Seq)-end]
	if r.Qual != "" {
		r.Qual = r.Qual[start : len(r.Qual)-end]
	}
}

var errEOF = errors.New("eof")

// maxTokenSize bounds a single input line. Nanopore ultra-long reads
// exceed bufio's 64KiB default by orders of magnitude.
const maxTokenSize = 256 << 20

// Scanner provides a convenient interface for reading FASTQ and FASTA
// read data from one stream. The format is detected per record from
// the header byte: "@" introduces a four-line FASTQ record, ">" a
// FASTA record whose sequence may wrap across any number of lines.
// The Scan method fills the next record, returning a boolean
// indicating whether the read succeeded. Scanners are not threadsafe.
//
// Scanner validates record framing (header bytes, truncation, FASTQ
// sequence/quality length agreement) but not sequence content.
type Scanner struct {
	b       *bufio.Scanner
	err     error
	fields  Field
	pending string // lookahead header consumed while scanning a FASTA record
}

// Field enumerates record fields. It is used to specify fields to read
// in NewScanner.
type Field uint

const (
	// ID causes the Record.ID field to be filled
	ID Field = 1 << iota
	// Seq causes the Record.Seq field to be filled
	Seq
	// Unk causes the Record.Unk field to be filled
	Unk
	// Qual causes the Record.Qual field to be filled
	Qual
	// All equals ID|Seq|Unk|Qual.
	All = ID | Seq | Unk | Qual
)

// NewScanner constructs a new Scanner that reads raw FASTQ or FASTA
// data from the provided reader. Fields is a bitset of the fields to
// read. A typical value would be All or ID|Seq|Qual.
func NewScanner(r io.Reader, fields Field) *Scanner {
	b := bufio.NewScanner(r)
	b.Buffer(make([]byte, 0, 1<<20), maxTokenSize)
	return &Scanner{b: b, fields: fields}
}

// Scan the next record into the provided record. Scan returns a
// boolean indicating whether the scan succeeded. Once Scan returns
// false, it never returns true again. Upon completion, the user
// should check the Err method to determine whether scanning stopped
// because of an error or because the end of the stream was reached.
func (f *Scanner) Scan(rec *Record) bool {
	if f.err != nil {
		return false
	}
	first := f.pending
	f.pending = ""
	if first == "" {
		if !f.b.Scan() {
			if f.err = f.b.Err(); f.err == nil {
				f.err = errEOF
			}
			return false
		}
		first = f.b.Text()
	}
	if len(first) > 0 && first[0] == '@' {
		return f.scanFASTQ(rec, first)
	}
	if len(first) > 0 && first[0] == '>' {
		return f.scanFASTA(rec, first)
	}
	f.err = ErrInvalid
	return false
}

func (f *Scanner) scanFASTQ(rec *Record, id string) bool {
	if f.fields&ID != 0 {
		rec.ID = id
	}
	if !f.scan() {
		return false
	}
	seqLen := len(f.b.Bytes())
	if f.fields&Seq != 0 {
		rec.Seq = f.b.Text()
	}
	if !f.scan() {
		return false
	}
	unk := f.b.Bytes()
	if len(unk) == 0 || unk[0] != '+' {
		f.err = ErrInvalid
		return false
	}
	if f.fields&Unk != 0 {
		rec.Unk = string(unk)
	}
	if !f.scan() {
		return false
	}
	if len(f.b.Bytes()) != seqLen {
		f.err = ErrMismatch
		return false
	}
	if f.fields&Qual != 0 {
		rec.Qual = f.b.Text()
	}
	return true
}

func (f *Scanner) scanFASTA(rec *Record, id string) bool {
	if f.fields&ID != 0 {
		rec.ID = id
	}
	if f.fields&Unk != 0 {
		rec.Unk = ""
	}
	if f.fields&Qual != 0 {
		rec.Qual = ""
	}
	var sb strings.Builder
	for f.b.Scan() {
		line := f.b.Bytes()
		if len(line) > 0 && line[0] == '>' {
			f.pending = string(line)
			break
		}
		if f.fields&Seq != 0 {
			sb.Write(line)
		}
	}
	if f.pending == "" {
		// End of input legally completes a FASTA record, but a read
		// error must still surface.
		if err := f.b.Err(); err != nil {
			f.err = err
			return false
		}
	}
	if f.fields&Seq != 0 {
		rec.Seq = sb.String()
	}
	return true
}

func (f *Scanner) scan() bool {
	ok := f.b.Scan()
	if !ok {
		if f.err = f.b.Err(); f.err == nil {
			f.err = ErrShort
		}
	}
	return ok
}

// Err returns the scanning error, if any.
func (f *Scanner) Err() error {
	if f.err == errEOF {
		return nil
	}
	return f.err
}
