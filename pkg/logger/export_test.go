package logger

// reset drops the process-wide logger so each test can call Init again.
func reset() {
	mu.Lock()
	instance = nil
	mu.Unlock()
}
