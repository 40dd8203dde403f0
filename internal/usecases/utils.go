package usecases

import "time"

// test seam
var timeNow = time.Now
