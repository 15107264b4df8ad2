package frame_test

import (
	"context"
	"errors"
	"io"
	"log/slog"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/glcanvas/internal/frame"
)

var quiet = slog.New(slog.NewTextHandler(io.Discard, nil))

var _ = Describe("Loop", func() {
	var seen []float64

	record := func(ts float64) (frame.Control, error) {
		seen = append(seen, ts)
		return frame.Continue, nil
	}

	BeforeEach(func() {
		seen = nil
	})

	It("runs every scripted frame in order and ends when the script is exhausted", func() {
		loop := frame.NewLoop(record, frame.WithLogger(quiet))

		err := loop.Run(context.Background(), frame.NewScript(0, 16, 33, 50))

		Expect(err).NotTo(HaveOccurred())
		Expect(seen).To(Equal([]float64{0, 16, 33, 50}))
		Expect(loop.Frames()).To(Equal(4))
	})

	It("stops when a step returns Stop", func() {
		loop := frame.NewLoop(func(ts float64) (frame.Control, error) {
			seen = append(seen, ts)
			if len(seen) == 2 {
				return frame.Stop, nil
			}
			return frame.Continue, nil
		}, frame.WithLogger(quiet))

		Expect(loop.Run(context.Background(), frame.NewScript(1, 2, 3, 4))).To(Succeed())
		Expect(seen).To(Equal([]float64{1, 2}))
		Expect(loop.Stopped()).To(BeTrue())
	})

	It("honours the frame limit against an unbounded clock", func() {
		clock, err := frame.NewClock(60)
		Expect(err).NotTo(HaveOccurred())

		loop := frame.NewLoop(record, frame.WithMaxFrames(10), frame.WithLogger(quiet))
		Expect(loop.Run(context.Background(), clock)).To(Succeed())
		Expect(seen).To(HaveLen(10))
	})

	It("does not run another iteration after Stop", func() {
		var loop *frame.Loop
		loop = frame.NewLoop(func(ts float64) (frame.Control, error) {
			seen = append(seen, ts)
			loop.Stop()
			return frame.Continue, nil
		}, frame.WithLogger(quiet))

		Expect(loop.Run(context.Background(), frame.NewScript(1, 2, 3))).To(Succeed())
		Expect(seen).To(Equal([]float64{1}))

		ctl, err := loop.Tick(4)
		Expect(err).NotTo(HaveOccurred())
		Expect(ctl).To(Equal(frame.Stop))
		Expect(seen).To(HaveLen(1))
	})

	It("returns the context error when cancelled", func() {
		ctx, cancel := context.WithCancel(context.Background())
		loop := frame.NewLoop(func(ts float64) (frame.Control, error) {
			seen = append(seen, ts)
			cancel()
			return frame.Continue, nil
		}, frame.WithLogger(quiet))

		clock, _ := frame.NewClock(30)
		err := loop.Run(ctx, clock)
		Expect(err).To(MatchError(context.Canceled))
		Expect(seen).To(HaveLen(1))
	})

	Context("when frames fail", func() {
		boom := errors.New("draw failed")

		It("skips isolated failures and keeps running", func() {
			loop := frame.NewLoop(func(ts float64) (frame.Control, error) {
				seen = append(seen, ts)
				if ts == 2 || ts == 4 {
					return frame.Continue, boom
				}
				return frame.Continue, nil
			}, frame.WithLogger(quiet))

			Expect(loop.Run(context.Background(), frame.NewScript(1, 2, 3, 4, 5))).To(Succeed())
			Expect(seen).To(HaveLen(5))
			Expect(loop.Failures()).To(Equal(2))
		})

		It("aborts after the consecutive error limit", func() {
			loop := frame.NewLoop(func(ts float64) (frame.Control, error) {
				seen = append(seen, ts)
				return frame.Continue, boom
			}, frame.WithMaxErrors(2), frame.WithLogger(quiet))

			err := loop.Run(context.Background(), frame.NewScript(1, 2, 3, 4))
			Expect(err).To(MatchError(frame.ErrTooManyErrors))
			Expect(errors.Is(err, boom)).To(BeTrue())

			var serr *frame.StepError
			Expect(errors.As(err, &serr)).To(BeTrue())
			Expect(serr.Frame).To(Equal(1))
			Expect(serr.Timestamp).To(Equal(2.0))
			Expect(seen).To(Equal([]float64{1, 2}))
		})

		It("never aborts when the limit is disabled", func() {
			loop := frame.NewLoop(func(ts float64) (frame.Control, error) {
				return frame.Continue, boom
			}, frame.WithMaxErrors(0), frame.WithLogger(quiet))

			Expect(loop.Run(context.Background(), frame.NewScript(1, 2, 3, 4, 5, 6))).To(Succeed())
			Expect(loop.Failures()).To(Equal(6))
		})
	})
})
