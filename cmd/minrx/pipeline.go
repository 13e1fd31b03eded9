package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/2tvenom/cbor"
	"github.com/minrx/minrx-go/logger"
	"github.com/minrx/minrx-go/rx"
	"github.com/minrx/minrx-go/rx/bridge"
	"github.com/pkg/errors"
	"github.com/valyala/bytebufferpool"
)

const (
	formatText = "text"
	formatJSON = "json"
	formatCBOR = "cbor"
)

type pipeline struct {
	scheduler string
	start     int
	count     int
	even      bool
	scale     int
	aggregate string
	format    string
}

func (p pipeline) newScheduler() (rx.Scheduler, io.Closer, error) {
	switch p.scheduler {
	case "", "immediate":
		return rx.Immediate(), nil, nil
	case "worker":
		s := rx.NewWorker()
		return s, s, nil
	case "pooled":
		s := rx.NewPooled(4)
		return s, s, nil
	default:
		return nil, nil, errors.Errorf("unknown scheduler: %s", p.scheduler)
	}
}

func (p pipeline) source(s rx.Scheduler) (rx.Producer[int], error) {
	src, err := rx.Range(p.start, p.count, s)
	if err != nil {
		return nil, errors.Wrap(err, "invalid range")
	}
	if p.even {
		src = rx.Where(src, func(n int) bool {
			return n%2 == 0
		})
	}
	if p.scale != 1 {
		scale := p.scale
		src = rx.Select(src, func(n int) int {
			return n * scale
		})
	}
	return src, nil
}

func (p pipeline) evaluate(ctx context.Context, src rx.Producer[int]) (result interface{}, err error) {
	switch p.aggregate {
	case "", "none":
		result, err = bridge.ToSlice(ctx, src)
	case "sum":
		result, err = rx.Sum(ctx, src)
	case "count":
		result, err = rx.Count(ctx, src)
	case "first":
		result, err = rx.FirstOrDefault(ctx, src)
	case "last":
		result, err = rx.LastOrDefault(ctx, src)
	default:
		err = errors.Errorf("unknown aggregate: %s", p.aggregate)
	}
	return
}

func (p pipeline) run(ctx context.Context, w io.Writer) error {
	s, closer, err := p.newScheduler()
	if err != nil {
		return err
	}
	if closer != nil {
		defer func() {
			if err := closer.Close(); err != nil {
				logger.Warnf("close scheduler failed: %s\n", err)
			}
		}()
	}
	src, err := p.source(s)
	if err != nil {
		return err
	}
	result, err := p.evaluate(ctx, src)
	if err != nil {
		return err
	}
	logger.Debugf("pipeline %s finished: %v\n", p.aggregate, result)
	return writeResult(w, p.format, result)
}

func writeResult(w io.Writer, format string, result interface{}) (err error) {
	bb := bytebufferpool.Get()
	defer bytebufferpool.Put(bb)

	switch format {
	case "", formatText:
		err = writeText(bb, result)
	case formatJSON:
		err = json.NewEncoder(bb).Encode(result)
	case formatCBOR:
		var buf bytes.Buffer
		encoder := cbor.NewEncoder(&buf)
		if _, err = encoder.Marshal(result); err == nil {
			_, err = bb.Write(buf.Bytes())
		}
	default:
		err = errors.Errorf("unknown format: %s", format)
	}
	if err != nil {
		return
	}
	_, err = bb.WriteTo(w)
	return
}

func writeText(bb *bytebufferpool.ByteBuffer, result interface{}) error {
	values, ok := result.([]int)
	if !ok {
		_, err := fmt.Fprintln(bb, result)
		return err
	}
	for _, v := range values {
		bb.B = strconv.AppendInt(bb.B, int64(v), 10)
		bb.B = append(bb.B, '\n')
	}
	return nil
}
