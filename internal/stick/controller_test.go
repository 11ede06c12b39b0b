package stick_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/san-kum/analogstick/internal/geom"
	"github.com/san-kum/analogstick/internal/logger"
	"github.com/san-kum/analogstick/internal/stick"
)

type fakeEvent struct {
	modality stick.Modality
	contact  stick.ContactID
	pos      geom.Vec2
	stopped  bool
}

func (e *fakeEvent) Modality() stick.Modality { return e.modality }
func (e *fakeEvent) Contact() stick.ContactID { return e.contact }
func (e *fakeEvent) LocalPosition() geom.Vec2 { return e.pos }
func (e *fakeEvent) StopPropagation()         { e.stopped = true }

func touch(id stick.ContactID, x, y float64) *fakeEvent {
	return &fakeEvent{modality: stick.Touch, contact: id, pos: geom.V(x, y)}
}

func mouse(x, y float64) *fakeEvent {
	return &fakeEvent{modality: stick.Mouse, pos: geom.V(x, y)}
}

var _ = Describe("Controller", func() {
	var (
		ctrl     *stick.Controller
		moves    []stick.MovePayload
		releases int
	)

	BeforeEach(func() {
		var err error
		ctrl, err = stick.New(60, 30)
		Expect(err).NotTo(HaveOccurred())
		moves = nil
		releases = 0
		ctrl.OnMove(func(p stick.MovePayload) { moves = append(moves, p) })
		ctrl.OnRelease(func() { releases++ })
	})

	Describe("construction", func() {
		DescribeTable("rejects radii outside 0 < inner < outer",
			func(outer, inner float64) {
				c, err := stick.New(outer, inner)
				Expect(c).To(BeNil())
				Expect(err).To(MatchError(stick.ErrInvalidConfiguration))
			},
			Entry("inner equals outer", 30.0, 30.0),
			Entry("inner larger", 20.0, 30.0),
			Entry("zero inner", 60.0, 0.0),
			Entry("negative inner", 60.0, -5.0),
			Entry("NaN outer", math.NaN(), 10.0),
			Entry("infinite outer", math.Inf(1), 10.0),
		)

		It("reports geometry", func() {
			Expect(ctrl.OuterRadius()).To(Equal(60.0))
			Expect(ctrl.InnerRadius()).To(Equal(30.0))
			Expect(ctrl.MaxOffset()).To(Equal(30.0))
		})
	})

	It("starts idle", func() {
		Expect(ctrl.Dragging()).To(BeFalse())
		Expect(ctrl.Offset()).To(Equal(geom.Vec2{}))
		_, ok := ctrl.Contact()
		Expect(ok).To(BeFalse())
	})

	It("ignores a move with no prior start", func() {
		ctrl.OnContactMove(mouse(10, 10))
		Expect(moves).To(BeEmpty())
		Expect(ctrl.Offset()).To(Equal(geom.Vec2{}))
	})

	Describe("starting a contact", func() {
		It("adopts the contact and anchor without notifying", func() {
			ctrl.OnContactStart(touch(7, 5, 5))

			id, ok := ctrl.Contact()
			Expect(ok).To(BeTrue())
			Expect(id).To(Equal(stick.ContactID(7)))
			Expect(ctrl.Dragging()).To(BeTrue())
			Expect(ctrl.Anchor()).To(Equal(geom.V(5, 5)))
			Expect(ctrl.Offset()).To(Equal(geom.Vec2{}))
			Expect(moves).To(BeEmpty())
			Expect(releases).To(BeZero())
		})

		It("lets a second start override the first without a release", func() {
			ctrl.OnContactStart(touch(1, 0, 0))
			ctrl.OnContactStart(touch(2, 20, 20))

			id, _ := ctrl.Contact()
			Expect(id).To(Equal(stick.ContactID(2)))
			Expect(ctrl.Anchor()).To(Equal(geom.V(20, 20)))
			Expect(releases).To(BeZero())

			ctrl.OnContactMove(touch(1, 50, 50))
			Expect(moves).To(BeEmpty())

			ctrl.OnContactMove(touch(2, 30, 20))
			Expect(moves).To(HaveLen(1))
			Expect(moves[0].X).To(Equal(10.0))
		})
	})

	Describe("moving", func() {
		BeforeEach(func() {
			ctrl.OnContactStart(mouse(100, 100))
		})

		It("keeps the raw offset inside the boundary", func() {
			ctrl.OnContactMove(mouse(110, 100))

			Expect(ctrl.Offset()).To(Equal(geom.V(10, 0)))
			Expect(moves).To(Equal([]stick.MovePayload{{X: 10, Y: 0, Angle: 0, Length: 10}}))
		})

		It("clamps the knob but reports the raw displacement", func() {
			ctrl.OnContactMove(mouse(200, 100))

			Expect(ctrl.Offset()).To(Equal(geom.V(30, 0)))
			Expect(moves).To(Equal([]stick.MovePayload{{X: 100, Y: 0, Angle: 0, Length: 100}}))
		})

		It("clamps diagonally preserving direction", func() {
			ctrl.OnContactMove(mouse(130, 140))

			off := ctrl.Offset()
			Expect(off.X).To(BeNumerically("~", 18, 1e-9))
			Expect(off.Y).To(BeNumerically("~", 24, 1e-9))
			Expect(moves[0].Length).To(BeNumerically("~", 50, 1e-9))
		})

		It("reports a zero displacement without NaN", func() {
			ctrl.OnContactMove(mouse(100, 100))

			Expect(ctrl.Offset()).To(Equal(geom.Vec2{}))
			Expect(moves).To(HaveLen(1))
			Expect(math.IsNaN(moves[0].Angle)).To(BeFalse())
			Expect(moves[0].Length).To(BeZero())
		})

		DescribeTable("uses y-down angles in (-180, 180]",
			func(dx, dy, angle float64) {
				ctrl.OnContactMove(mouse(100+dx, 100+dy))
				Expect(moves).To(HaveLen(1))
				Expect(moves[0].Angle).To(BeNumerically("~", angle, 1e-9))
			},
			Entry("down", 0.0, 60.0, 90.0),
			Entry("up", 0.0, -60.0, -90.0),
			Entry("left", -60.0, 0.0, 180.0),
			Entry("right", 60.0, 0.0, 0.0),
		)
	})

	Describe("touch ownership", func() {
		BeforeEach(func() {
			ctrl.OnContactStart(touch(1, 0, 0))
		})

		It("ignores moves from other touches", func() {
			ctrl.OnContactMove(touch(2, 10, 0))

			Expect(moves).To(BeEmpty())
			Expect(ctrl.Offset()).To(Equal(geom.Vec2{}))
		})

		It("ignores ends from other touches but still stops their propagation", func() {
			ev := touch(2, 0, 0)
			ctrl.OnContactEnd(ev)

			Expect(ev.stopped).To(BeTrue())
			Expect(ctrl.Dragging()).To(BeTrue())
			Expect(releases).To(BeZero())
		})

		It("ignores end-outside from other touches but still stops their propagation", func() {
			ev := touch(2, 400, 0)
			ctrl.OnContactEndOutside(ev)

			Expect(ev.stopped).To(BeTrue())
			Expect(ctrl.Dragging()).To(BeTrue())
			Expect(releases).To(BeZero())
			id, ok := ctrl.Contact()
			Expect(ok).To(BeTrue())
			Expect(id).To(Equal(stick.ContactID(1)))
		})

		It("accepts mouse events regardless of identity", func() {
			ctrl.OnContactMove(mouse(5, 0))
			Expect(moves).To(HaveLen(1))
		})

		It("does not let a touch take over a mouse drag by id", func() {
			ctrl.OnContactStart(mouse(0, 0))
			ctrl.OnContactMove(touch(0, 10, 0))
			Expect(moves).To(BeEmpty())
		})
	})

	Describe("releasing", func() {
		BeforeEach(func() {
			ctrl.OnContactStart(touch(4, 0, 0))
			ctrl.OnContactMove(touch(4, 100, 0))
		})

		It("returns to rest and emits one release", func() {
			ev := touch(4, 100, 0)
			ctrl.OnContactEnd(ev)

			Expect(ev.stopped).To(BeTrue())
			Expect(ctrl.Dragging()).To(BeFalse())
			Expect(ctrl.Offset()).To(Equal(geom.Vec2{}))
			_, ok := ctrl.Contact()
			Expect(ok).To(BeFalse())
			Expect(releases).To(Equal(1))
		})

		It("is idempotent", func() {
			ctrl.OnContactEnd(touch(4, 0, 0))
			ctrl.OnContactEnd(touch(4, 0, 0))
			Expect(releases).To(Equal(1))
		})

		It("treats end outside like end", func() {
			ctrl.OnContactEndOutside(touch(4, 400, 0))
			Expect(releases).To(Equal(1))
			Expect(ctrl.Offset()).To(Equal(geom.Vec2{}))
		})

		It("accepts any mouse up for a mouse drag", func() {
			ctrl.OnContactStart(mouse(0, 0))
			ctrl.OnContactEndOutside(mouse(500, 500))
			Expect(releases).To(Equal(1))
		})
	})

	Describe("Reset", func() {
		It("goes idle without a release", func() {
			ctrl.OnContactStart(touch(3, 0, 0))
			ctrl.OnContactMove(touch(3, 10, 10))

			ctrl.Reset()

			Expect(ctrl.Dragging()).To(BeFalse())
			Expect(ctrl.Offset()).To(Equal(geom.Vec2{}))
			Expect(releases).To(BeZero())

			ctrl.OnContactEnd(touch(3, 0, 0))
			Expect(releases).To(BeZero())
		})
	})

	Describe("subscriptions", func() {
		It("stops notifying after Off", func() {
			extra := 0
			id := ctrl.OnRelease(func() { extra++ })
			ctrl.Off(id)

			ctrl.OnContactStart(mouse(0, 0))
			ctrl.OnContactEnd(mouse(0, 0))

			Expect(releases).To(Equal(1))
			Expect(extra).To(BeZero())
		})

		It("tolerates a listener unsubscribing itself", func() {
			var id stick.ListenerID
			calls := 0
			id = ctrl.OnMove(func(stick.MovePayload) {
				calls++
				ctrl.Off(id)
			})

			ctrl.OnContactStart(mouse(0, 0))
			ctrl.OnContactMove(mouse(1, 0))
			ctrl.OnContactMove(mouse(2, 0))

			Expect(calls).To(Equal(1))
			Expect(moves).To(HaveLen(2))
		})
	})

	Describe("Handle", func() {
		It("dispatches unified kinds", func() {
			ctrl.Handle(stick.Start, touch(9, 0, 0))
			ctrl.Handle(stick.Move, touch(9, 0, 60))
			ctrl.Handle(stick.End, touch(9, 0, 60))

			Expect(moves).To(HaveLen(1))
			Expect(moves[0].Angle).To(BeNumerically("~", 90, 1e-9))
			Expect(releases).To(Equal(1))
		})

		It("ignores everything after Dispose", func() {
			ctrl.Dispose()
			ctrl.Handle(stick.Start, mouse(0, 0))
			ctrl.Handle(stick.Move, mouse(10, 0))

			Expect(ctrl.Disposed()).To(BeTrue())
			Expect(ctrl.Dragging()).To(BeFalse())
			Expect(moves).To(BeEmpty())
		})
	})

	It("logs contact lifecycle at debug level", func() {
		core, recorded := observer.New(zapcore.DebugLevel)
		c, err := stick.New(60, 30, stick.WithLogger(logger.FromZap(zap.New(core))))
		Expect(err).NotTo(HaveOccurred())

		c.OnContactStart(touch(1, 0, 0))
		c.OnContactMove(touch(2, 5, 5))
		c.OnContactEnd(touch(1, 0, 0))

		Expect(recorded.FilterMessage("contact start").Len()).To(Equal(1))
		Expect(recorded.FilterMessage("foreign contact ignored").Len()).To(Equal(1))
		Expect(recorded.FilterMessage("contact released").Len()).To(Equal(1))
	})
})
