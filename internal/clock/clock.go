package clock

import "time"

// NowFunc supplies the wall clock; tests pin it.
var NowFunc = time.Now

// Now returns NowFunc().
func Now() time.Time { return NowFunc() }
