package face

import "github.com/sweeney/desk-bot/internal/display"

// Fixed face geometry. The two eye centers are symmetric about the screen's
// vertical midline (x=64 on a 128x64 panel).
const (
	midX = display.Width / 2

	leftEyeX  = 44
	rightEyeX = 84
	eyeY      = 24

	eyeRadius      = 10 // Neutral, Sad, Angry
	bigEyeRadius   = 12 // Happy, Scared
	highlightR     = 3
	scaredPupilR   = 5
	sadEyeDrop     = 4 // Sad eye is shifted down by this much
	tearRadius     = 3
	tearY          = 42
	browY          = 8
	browHalf       = 10
	mouthY         = 50
	mouthHalf      = 10
	happyMouthY    = 44
	happyMouthR    = 16
	teethCount     = 4
	toothW         = 9
	toothH         = 8
	toothGap       = 3
	teethY         = 44
	grinDashHalf   = 8
	grinDashTop    = 20
	grinDashBottom = 28
)

// Render draws the given expression and blink phase to the driver and
// flushes. It is stateless: identical inputs produce identical draw-call
// sequences. An expression value outside the known set renders Neutral.
func Render(d display.Driver, e Expression, ph BlinkPhase) error {
	d.Clear()
	switch e {
	case Happy:
		drawHappy(d, ph)
	case Sad:
		drawSad(d, ph)
	case Angry:
		drawAngry(d, ph)
	case Grinning:
		drawGrinning(d)
	case Scared:
		drawScared(d, ph)
	default:
		// Unknown tags must not crash; fall back to Neutral.
		drawNeutral(d, ph)
	}
	return d.Flush()
}

// eachEye calls fn for the left then the right eye. mirror is -1 for the
// left eye and +1 for the right, for shapes that flip about the midline.
func eachEye(fn func(cx, mirror int)) {
	fn(leftEyeX, -1)
	fn(rightEyeX, 1)
}

// closedEyeLine draws the shared closed-eye rule: each eye degrades to a
// single short horizontal line.
func closedEyeLine(d display.Driver) {
	eachEye(func(cx, _ int) {
		d.Line(cx-eyeRadius, eyeY, cx+eyeRadius, eyeY, display.ColorOn)
	})
}

func drawNeutral(d display.Driver, ph BlinkPhase) {
	if ph == Closed {
		closedEyeLine(d)
	} else {
		eachEye(func(cx, _ int) {
			d.FillCircle(cx, eyeY, eyeRadius, display.ColorOn)
			d.FillCircle(cx-3, eyeY-3, highlightR, display.ColorOff)
		})
	}
	// Straight short eyebrows and a straight mouth line.
	eachEye(func(cx, _ int) {
		d.Line(cx-browHalf, browY, cx+browHalf, browY, display.ColorOn)
	})
	d.Line(midX-mouthHalf, mouthY, midX+mouthHalf, mouthY, display.ColorOn)
}

func drawHappy(d display.Driver, ph BlinkPhase) {
	if ph == Closed {
		closedEyeLine(d)
	} else {
		eachEye(func(cx, _ int) {
			d.FillCircle(cx, eyeY, bigEyeRadius, display.ColorOn)
			d.FillCircle(cx-4, eyeY-4, highlightR, display.ColorOff)
		})
	}
	// Eyebrows tilted outward-up: the outer end sits higher.
	eachEye(func(cx, mirror int) {
		outer := cx + mirror*browHalf
		inner := cx - mirror*browHalf
		d.Line(outer, browY-2, inner, browY+4, display.ColorOn)
	})
	// Lower semicircular arc mouth: filled circle with its top half masked.
	d.FillCircle(midX, happyMouthY, happyMouthR, display.ColorOn)
	d.FillRect(midX-happyMouthR-1, happyMouthY-happyMouthR-1,
		2*happyMouthR+3, happyMouthR+1, display.ColorOff)
}

func drawSad(d display.Driver, ph BlinkPhase) {
	if ph == Closed {
		closedEyeLine(d)
	} else {
		// Eye shifted down with its upper portion masked out, leaving only
		// a lower arc visible.
		eachEye(func(cx, _ int) {
			cy := eyeY + sadEyeDrop
			d.FillCircle(cx, cy, eyeRadius, display.ColorOn)
			d.FillRect(cx-eyeRadius-1, cy-eyeRadius-1,
				2*eyeRadius+3, eyeRadius+1, display.ColorOff)
		})
	}
	// Teardrop just below each eye.
	eachEye(func(cx, _ int) {
		d.FillCircle(cx, tearY, tearRadius, display.ColorOn)
	})
}

func drawAngry(d display.Driver, ph BlinkPhase) {
	if ph == Closed {
		closedEyeLine(d)
	} else {
		// Eye with a triangular wedge removed from the side nearer the
		// face's inner edge, mirrored between the two eyes.
		eachEye(func(cx, mirror int) {
			d.FillCircle(cx, eyeY, eyeRadius, display.ColorOn)
			inner := cx - mirror*(eyeRadius+1)
			outer := cx + mirror*(eyeRadius+1)
			top := eyeY - eyeRadius - 1
			d.FillTriangle(outer, top, inner, top, inner, eyeY, display.ColorOff)
		})
	}
	// Furrowed brow: a short angled line sloping down toward the midline.
	eachEye(func(cx, mirror int) {
		outer := cx + mirror*browHalf
		inner := cx - mirror*browHalf
		d.Line(outer, browY-2, inner, browY+6, display.ColorOn)
	})
}

// drawGrinning ignores BlinkPhase: the eyes are always short closed diagonal
// dashes.
func drawGrinning(d display.Driver) {
	eachEye(func(cx, mirror int) {
		d.Line(cx-mirror*grinDashHalf, grinDashTop,
			cx+mirror*grinDashHalf, grinDashBottom, display.ColorOn)
	})
	// A fixed row of equal-width teeth, evenly spaced and centered.
	total := teethCount*toothW + (teethCount-1)*toothGap
	startX := midX - total/2
	for i := 0; i < teethCount; i++ {
		d.FillRect(startX+i*(toothW+toothGap), teethY, toothW, toothH, display.ColorOn)
	}
}

func drawScared(d display.Driver, ph BlinkPhase) {
	if ph == Closed {
		// Trembling variant: three short zig-zag segments per eye.
		eachEye(func(cx, _ int) {
			d.Line(cx-9, eyeY-2, cx-3, eyeY+2, display.ColorOn)
			d.Line(cx-3, eyeY+2, cx+3, eyeY-2, display.ColorOn)
			d.Line(cx+3, eyeY-2, cx+9, eyeY+2, display.ColorOn)
		})
	} else {
		// Enlarged eye with a dark circle punched out of the center.
		eachEye(func(cx, _ int) {
			d.FillCircle(cx, eyeY, bigEyeRadius, display.ColorOn)
			d.FillCircle(cx, eyeY, scaredPupilR, display.ColorOff)
		})
	}
	// Open-mouth barrel outline from six line segments, identical for both
	// eye variants.
	d.Line(midX-10, 46, midX-6, 41, display.ColorOn)
	d.Line(midX-6, 41, midX+6, 41, display.ColorOn)
	d.Line(midX+6, 41, midX+10, 46, display.ColorOn)
	d.Line(midX+10, 46, midX+6, 55, display.ColorOn)
	d.Line(midX+6, 55, midX-6, 55, display.ColorOn)
	d.Line(midX-6, 55, midX-10, 46, display.ColorOn)
}
