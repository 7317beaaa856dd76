package lights

// MaxStep is the largest change any channel may make in one tick.
const MaxStep uint8 = 5

// StepChannel moves current toward target by at most maxStep without
// overshooting.
func StepChannel(current, target, maxStep uint8) uint8 {
	if current == target {
		return current
	}
	if target > current {
		return current + min(target-current, maxStep)
	}
	return current - min(current-target, maxStep)
}

// StepColor advances each channel of l's current color toward its target.
func StepColor(l *Light, maxStep uint8) {
	if l.AtTarget() {
		return
	}
	l.Current.Red = StepChannel(l.Current.Red, l.Target.Red, maxStep)
	l.Current.Green = StepChannel(l.Current.Green, l.Target.Green, maxStep)
	l.Current.Blue = StepChannel(l.Current.Blue, l.Target.Blue, maxStep)
}

// StepAll runs StepColor over every light.
func StepAll(ls []*Light, maxStep uint8) {
	for _, l := range ls {
		StepColor(l, maxStep)
	}
}

// AllAtTarget reports whether every light has reached its target exactly.
func AllAtTarget(ls []*Light) bool {
	for _, l := range ls {
		if !l.AtTarget() {
			return false
		}
	}
	return true
}
