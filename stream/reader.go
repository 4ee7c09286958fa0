// Copyright (c) 2026 The Treap-vs-BST-Comparison developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package stream decodes line-delimited JSON submission dumps, optionally
// zstandard compressed, into the posts consumed by the feed indexes.  Lines
// that cannot be decoded or that miss a required field are skipped and
// counted rather than surfaced as errors, so the indexes only ever see
// validated records.
package stream

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zstd"

	"github.com/ZakiNabeel/Treap-vs-BST-Comparison/feedtree"
)

const (
	// maxLineSize is the largest line the reader will buffer before giving
	// up on the record.  Submission records carry their full body text, so
	// lines well beyond bufio's default 64KiB limit show up routinely in
	// real dumps.  A line beyond this size is dropped and counted like any
	// other malformed record rather than aborting the stream.
	maxLineSize = 1 << 21
)

// errLineTooLong is returned by readLine when a line exceeds maxLineSize.
// The offending line has been fully consumed, so the caller can count it and
// keep reading.
var errLineTooLong = errors.New("line exceeds maximum size")

// submission models the only fields of a submission record the indexes care
// about.  Everything else on the line is ignored.  The numeric fields are
// decoded as json.Number since older dumps render created_utc as a float.
type submission struct {
	ID         string      `json:"id"`
	CreatedUTC json.Number `json:"created_utc"`
	Score      json.Number `json:"score"`
}

// Reader yields validated posts from a line-delimited JSON stream.
type Reader struct {
	br      *bufio.Reader
	decoder *zstd.Decoder
	closer  io.Closer
	count   int64
	skipped int64
}

// New returns a Reader that decodes posts from the passed uncompressed
// stream.  The caller retains ownership of the underlying reader.
func New(r io.Reader) *Reader {
	return &Reader{br: bufio.NewReaderSize(r, 64*1024)}
}

// NewCompressed returns a Reader that decompresses the passed stream with
// zstandard before decoding posts from it.
func NewCompressed(r io.Reader) (*Reader, error) {
	decoder, err := zstd.NewReader(r)
	if err != nil {
		return nil, err
	}

	reader := New(decoder)
	reader.decoder = decoder
	return reader, nil
}

// Open opens the named submissions file and returns a Reader for it.  Files
// with a .zst or .zstd extension are decompressed transparently; anything
// else is read as-is.  The returned Reader owns the file handle and releases
// it on Close.
func Open(path string) (*Reader, error) {
	fi, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".zst", ".zstd":
		reader, err := NewCompressed(fi)
		if err != nil {
			fi.Close()
			return nil, err
		}
		reader.closer = fi
		return reader, nil
	}

	reader := New(fi)
	reader.closer = fi
	return reader, nil
}

// Next returns the next valid post in the stream.  It returns io.EOF once the
// stream is exhausted and a non-nil error only for read failures on the
// underlying stream, never for malformed records.  Lines that exceed
// maxLineSize are dropped and counted like any other malformed record.
func (r *Reader) Next() (feedtree.Post, error) {
	for {
		line, err := r.readLine()
		if err == errLineTooLong {
			r.skipped++
			log.Tracef("Skipping oversized line after %d posts",
				r.count)
			continue
		}
		if err != nil && err != io.EOF {
			return feedtree.Post{}, err
		}
		atEOF := err == io.EOF

		// A stream ending in a newline yields one final empty read,
		// which is the normal end of stream rather than a record.
		if len(line) > 0 || !atEOF {
			if post, ok := r.decodeLine(line); ok {
				return post, nil
			}
		}
		if atEOF {
			return feedtree.Post{}, io.EOF
		}
	}
}

// decodeLine decodes a single line into a post.  Lines that cannot be decoded
// or that miss a required field bump the skipped counter and report false.
func (r *Reader) decodeLine(line []byte) (feedtree.Post, bool) {
	var sub submission
	if err := json.Unmarshal(line, &sub); err != nil {
		r.skipped++
		log.Tracef("Skipping undecodable line after %d posts: %v",
			r.count, err)
		return feedtree.Post{}, false
	}

	timestamp, tsOK := parseIntField(sub.CreatedUTC)
	score, scoreOK := parseIntField(sub.Score)
	if sub.ID == "" || !tsOK || !scoreOK {
		r.skipped++
		log.Tracef("Skipping incomplete record after %d posts (id=%q)",
			r.count, sub.ID)
		return feedtree.Post{}, false
	}

	r.count++
	return feedtree.Post{
		ID:        sub.ID,
		Timestamp: timestamp,
		Score:     score,
	}, true
}

// readLine returns the next line without its trailing newline.  The final
// line of the stream is returned together with io.EOF.  A line longer than
// maxLineSize is consumed in full and reported as errLineTooLong with the
// stream positioned at the following line, so a single oversized record never
// poisons the rest of the stream.
func (r *Reader) readLine() ([]byte, error) {
	var line []byte
	for {
		frag, err := r.br.ReadSlice('\n')
		line = append(line, frag...)
		switch err {
		case nil:
			line = bytes.TrimSuffix(line, []byte{'\n'})
			line = bytes.TrimSuffix(line, []byte{'\r'})
			if len(line) > maxLineSize {
				return nil, errLineTooLong
			}
			return line, nil
		case io.EOF:
			if len(line) > maxLineSize {
				return nil, errLineTooLong
			}
			return line, io.EOF
		case bufio.ErrBufferFull:
			if len(line) > maxLineSize {
				return nil, r.drainLine()
			}
		default:
			return nil, err
		}
	}
}

// drainLine discards the remainder of the current line and reports the line
// as too long.  Read failures on the underlying stream take precedence.
func (r *Reader) drainLine() error {
	for {
		_, err := r.br.ReadSlice('\n')
		switch err {
		case nil, io.EOF:
			return errLineTooLong
		case bufio.ErrBufferFull:
			// Keep draining.
		default:
			return err
		}
	}
}

// Count returns the number of valid posts returned so far.
func (r *Reader) Count() int64 {
	return r.count
}

// Skipped returns the number of lines dropped because they could not be
// decoded or were missing a required field.
func (r *Reader) Skipped() int64 {
	return r.skipped
}

// Close releases the decompressor and, for Readers created via Open, the
// underlying file.
func (r *Reader) Close() error {
	if r.decoder != nil {
		r.decoder.Close()
	}
	if r.closer != nil {
		return r.closer.Close()
	}
	return nil
}

// parseIntField interprets a JSON number as an integer, tolerating the
// float-seconds form some dumps use for created_utc.  An absent field decodes
// as the empty string and reports failure.
func parseIntField(num json.Number) (int64, bool) {
	s := num.String()
	if s == "" {
		return 0, false
	}

	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		return v, true
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int64(f), true
	}
	return 0, false
}
