// Package logfile reads a debug adapter log from disk or stdin and hands the
// decoded text to the parser. Compressed logs are detected by their magic
// bytes.
package logfile

import (
	"bytes"
	"context"
	"io"
	"os"
	"strings"
	"time"

	"github.com/eapache/go-resiliency/retrier"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// ErrDecompress is returned when a compressed stream yields no data at all.
var ErrDecompress = errors.New("can't decompress log")

// Compression is the container format of the log file.
type Compression string

const (
	CompressionNone Compression = "none"
	CompressionGzip Compression = "gzip"
	CompressionZstd Compression = "zstd"
)

var (
	gzipMagic = []byte{0x1f, 0x8b}
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
)

// Stdin is the path that reads the log from standard input.
const Stdin = "-"

// Options controls how a log file is read.
type Options struct {
	// Retries is the number of extra attempts for a failing read.
	Retries    int
	RetryDelay time.Duration
}

// Intake is the decoded content of a log file.
type Intake struct {
	Path        string
	Text        string
	Compression Compression
	// Partial is set when the stream ended early and Text holds only the
	// prefix that could be decoded, e.g. a log copied while still written.
	Partial bool
	// Bytes is the size of the file before decompression.
	Bytes int
}

// notExistClassifier retries every read error except a missing file.
type notExistClassifier struct{}

func (notExistClassifier) Classify(err error) retrier.Action {
	switch {
	case err == nil:
		return retrier.Succeed
	case errors.Is(err, os.ErrNotExist), errors.Is(err, os.ErrPermission):
		return retrier.Fail
	}
	return retrier.Retry
}

// Read loads and decodes the log at path.
func Read(ctx context.Context, path string, opts Options) (*Intake, error) {
	var data []byte
	if path == Stdin {
		var err error
		data, err = io.ReadAll(os.Stdin)
		if err != nil {
			return nil, errors.Wrap(err, "can't read log from stdin")
		}
	} else {
		r := retrier.New(retrier.ConstantBackoff(opts.Retries, opts.RetryDelay), notExistClassifier{})
		err := r.RunCtx(ctx, func(ctx context.Context) error {
			var readErr error
			data, readErr = os.ReadFile(path)
			if readErr != nil {
				log.Debug().Err(readErr).Str("path", path).Msg("log read failed")
			}
			return readErr
		})
		if err != nil {
			return nil, errors.Wrapf(err, "can't read log %s", path)
		}
	}

	intake, err := Decode(data)
	if err != nil {
		return nil, errors.Wrapf(err, "can't decode log %s", path)
	}
	intake.Path = path
	if intake.Partial {
		log.Warn().Str("path", path).Int("decoded", len(intake.Text)).Msg("log stream is truncated, using the decoded prefix")
	}
	return intake, nil
}

// Detect returns the compression of data from its leading bytes.
func Detect(data []byte) Compression {
	switch {
	case bytes.HasPrefix(data, gzipMagic):
		return CompressionGzip
	case bytes.HasPrefix(data, zstdMagic):
		return CompressionZstd
	}
	return CompressionNone
}

// Decode decompresses data if needed and returns it as text.
func Decode(data []byte) (*Intake, error) {
	intake := &Intake{Compression: Detect(data), Bytes: len(data)}

	var (
		decoded []byte
		err     error
	)
	switch intake.Compression {
	case CompressionGzip:
		decoded, err = decodeGzip(data)
	case CompressionZstd:
		decoded, err = decodeZstd(data)
	default:
		decoded = data
	}

	if err != nil {
		if len(decoded) == 0 {
			return nil, errors.Wrapf(ErrDecompress, "%s: %v", intake.Compression, err)
		}
		intake.Partial = true
	}
	intake.Text = strings.TrimPrefix(string(decoded), "\uFEFF")
	return intake, nil
}

func decodeGzip(data []byte) ([]byte, error) {
	zr, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer zr.Close()
	return readPrefix(zr)
}

func decodeZstd(data []byte) ([]byte, error) {
	zr, err := zstd.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer zr.Close()
	return readPrefix(zr)
}

// readPrefix reads r to the end and keeps whatever was decoded before an
// error, so a truncated stream still produces its complete leading lines.
func readPrefix(r io.Reader) ([]byte, error) {
	var out bytes.Buffer
	buf := make([]byte, 64*1024)
	for {
		n, err := r.Read(buf)
		out.Write(buf[:n])
		if err == io.EOF {
			return out.Bytes(), nil
		}
		if err != nil {
			return out.Bytes(), err
		}
	}
}
