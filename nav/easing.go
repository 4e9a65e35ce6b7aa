package nav

// EasingFunc maps linear animation progress [0,1] to eased progress [0,1].
type EasingFunc func(t float64) float64

// Common easing functions
var (
	// EaseLinear - No easing, constant speed
	EaseLinear EasingFunc = func(t float64) float64 { return t }

	// EaseSmoothstep - Smooth S-curve, accelerates at start and decelerates at end
	EaseSmoothstep EasingFunc = func(t float64) float64 {
		return t * t * (3.0 - 2.0*t)
	}

	// EaseSmootherstep - Even smoother S-curve with zero derivatives at 0 and 1
	EaseSmootherstep EasingFunc = func(t float64) float64 {
		return t * t * t * (t*(t*6.0-15.0) + 10.0)
	}

	// EaseInQuad - Quadratic ease-in (slow start, accelerating)
	EaseInQuad EasingFunc = func(t float64) float64 {
		return t * t
	}

	// EaseOutQuad - Quadratic ease-out (fast start, decelerating)
	EaseOutQuad EasingFunc = func(t float64) float64 {
		return t * (2.0 - t)
	}

	// EaseInOutQuad - Quadratic ease-in-out
	EaseInOutQuad EasingFunc = func(t float64) float64 {
		if t < 0.5 {
			return 2.0 * t * t
		}
		return -1.0 + (4.0-2.0*t)*t
	}

	// EaseInCubic - Cubic ease-in (slower start)
	EaseInCubic EasingFunc = func(t float64) float64 {
		return t * t * t
	}

	// EaseOutCubic - Cubic ease-out
	EaseOutCubic EasingFunc = func(t float64) float64 {
		t1 := t - 1.0
		return t1*t1*t1 + 1.0
	}

	// EaseInOutCubic - Cubic ease-in-out, the default scroll curve
	EaseInOutCubic EasingFunc = func(t float64) float64 {
		if t < 0.5 {
			return 4.0 * t * t * t
		}
		t1 := 2.0*t - 2.0
		return 1.0 + t1*t1*t1*0.5
	}
)

// EasingByName resolves a configuration easing name. Unknown names fall back
// to the cubic ease-in-out default.
func EasingByName(name string) EasingFunc {
	switch name {
	case "linear":
		return EaseLinear
	case "smoothstep":
		return EaseSmoothstep
	case "smootherstep":
		return EaseSmootherstep
	case "ease-in-quad":
		return EaseInQuad
	case "ease-out-quad":
		return EaseOutQuad
	case "ease-in-out-quad":
		return EaseInOutQuad
	case "ease-in-cubic":
		return EaseInCubic
	case "ease-out-cubic":
		return EaseOutCubic
	case "ease-in-out-cubic":
		return EaseInOutCubic
	default:
		return EaseInOutCubic
	}
}
