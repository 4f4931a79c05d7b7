package config

import "testing"

func TestGet(t *testing.T) {
	t.Setenv("FP_TEST_STR", "hello")
	if got := Get("FP_TEST_STR", "fallback"); got != "hello" {
		t.Errorf("Get = %q, want hello", got)
	}
	if got := Get("FP_TEST_MISSING", "fallback"); got != "fallback" {
		t.Errorf("Get = %q, want fallback", got)
	}

	t.Setenv("FP_TEST_BLANK", "   ")
	if got := Get("FP_TEST_BLANK", "fallback"); got != "fallback" {
		t.Errorf("Get with blank value = %q, want fallback", got)
	}
}
