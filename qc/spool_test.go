package qc

import (
	"os"
	"testing"

	"github.com/grailbio/readqc/encoding/fastx"
	"github.com/grailbio/testutil"
	"github.com/grailbio/testutil/assert"
	"github.com/grailbio/testutil/expect"
)

func TestSpoolRoundTrip(t *testing.T) {
	tempDir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()

	recs := []fastx.Record{
		{ID: "@r1 ch=3", Seq: "ACGT", Unk: "+", Qual: "IIII"},
		{ID: "@r2", Seq: "GGGGG", Unk: "+", Qual: "!!!!!"},
		{ID: "@r3", Seq: "", Unk: "+", Qual: ""},
	}
	sp, err := newSpool(tempDir)
	assert.NoError(t, err)
	for i := range recs {
		assert.NoError(t, sp.add(&recs[i]))
	}
	assert.NoError(t, sp.finish())

	src, err := sp.replay()
	assert.NoError(t, err)
	var (
		got []fastx.Record
		rec fastx.Record
	)
	for src.Scan(&rec) {
		got = append(got, rec)
	}
	assert.NoError(t, src.Err())
	assert.NoError(t, src.Close())
	expect.EQ(t, got, recs)

	sp.remove()
	if _, err := os.Stat(sp.f.Name()); !os.IsNotExist(err) {
		t.Errorf("spool file still present after remove, stat err %v", err)
	}
}

func TestSpoolEmpty(t *testing.T) {
	tempDir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()

	sp, err := newSpool(tempDir)
	assert.NoError(t, err)
	assert.NoError(t, sp.finish())

	src, err := sp.replay()
	assert.NoError(t, err)
	var rec fastx.Record
	expect.EQ(t, src.Scan(&rec), false)
	assert.NoError(t, src.Err())
	assert.NoError(t, src.Close())
	sp.remove()
}
