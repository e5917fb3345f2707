package qc

import (
	"bytes"
	"encoding/gob"
	"io/ioutil"
	"os"

	"github.com/grailbio/base/recordio"
	"github.com/grailbio/base/recordio/recordiozstd"
	"github.com/grailbio/readqc/encoding/fastx"
	"github.com/pkg/errors"
	"v.io/x/lib/vlog"
)

// A spool buffers the records of a non-seekable source on local disk
// so the retention mode can run its second pass. Records are
// gob-encoded into a zstd-transformed recordio file and replayed in
// input order.
type spool struct {
	f *os.File
	w recordio.Writer
	n int
}

func newSpool(dir string) (*spool, error) {
	recordiozstd.Init()
	f, err := ioutil.TempFile(dir, "readqc-spool-*.rio")
	if err != nil {
		return nil, errors.Wrap(err, "create retention spool")
	}
	w := recordio.NewWriter(f, recordio.WriterOpts{
		Transformers: []string{recordiozstd.Name},
	})
	return &spool{f: f, w: w}, nil
}

func (s *spool) add(rec *fastx.Record) error {
	b := bytes.NewBuffer(nil)
	if err := gob.NewEncoder(b).Encode(rec); err != nil {
		return errors.Wrap(err, "spool record")
	}
	s.w.Append(b.Bytes())
	s.n++
	return nil
}

// finish flushes and closes the spool file. It must be called exactly
// once, before replay.
func (s *spool) finish() error {
	if err := s.w.Finish(); err != nil {
		return errors.Wrap(err, "finish retention spool")
	}
	if err := s.f.Close(); err != nil {
		return errors.Wrap(err, "close retention spool")
	}
	vlog.VI(1).Infof("spooled %d records to %s", s.n, s.f.Name())
	return nil
}

// replay opens the finished spool for a second pass over its records.
func (s *spool) replay() (*spoolSource, error) {
	f, err := os.Open(s.f.Name())
	if err != nil {
		return nil, errors.Wrap(err, "open retention spool")
	}
	return &spoolSource{f: f, r: recordio.NewScanner(f, recordio.ScannerOpts{})}, nil
}

// remove deletes the spool file.
func (s *spool) remove() {
	if err := os.Remove(s.f.Name()); err != nil {
		vlog.Errorf("remove retention spool %s: %v", s.f.Name(), err)
	}
}

// spoolSource replays spooled records. It implements Source.
type spoolSource struct {
	f   *os.File
	r   recordio.Scanner
	err error
}

func (s *spoolSource) Scan(rec *fastx.Record) bool {
	if s.err != nil {
		return false
	}
	if !s.r.Scan() {
		return false
	}
	*rec = fastx.Record{}
	if err := gob.NewDecoder(bytes.NewReader(s.r.Get().([]byte))).Decode(rec); err != nil {
		s.err = errors.Wrap(err, "decode spooled record")
		return false
	}
	return true
}

func (s *spoolSource) Err() error {
	if s.err != nil {
		return s.err
	}
	return s.r.Err()
}

func (s *spoolSource) Close() error {
	return s.f.Close()
}
