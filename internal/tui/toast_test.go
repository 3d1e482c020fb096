package tui

import (
	"strings"
	"testing"
)

func TestToastShowAndExpire(t *testing.T) {
	var toast Toast

	if toast.Visible() {
		t.Fatal("new toast should be hidden")
	}

	cmd := toast.Show(ToastSuccess, "", "saved")
	if cmd == nil {
		t.Fatal("Show must arm a dismissal timer")
	}
	if !toast.Visible() {
		t.Fatal("toast should be visible after Show")
	}

	toast.Expire(toastExpiredMsg{seq: toast.seq})
	if toast.Visible() {
		t.Error("matching expiry should dismiss the toast")
	}
}

func TestToastReplacementIgnoresOldTimer(t *testing.T) {
	var toast Toast

	toast.Show(ToastInfo, "", "first")
	firstSeq := toast.seq

	toast.Show(ToastError, "", "second")

	// The first showing's timer fires after replacement.
	toast.Expire(toastExpiredMsg{seq: firstSeq})
	if !toast.Visible() {
		t.Error("timer from a replaced showing must not dismiss the current toast")
	}

	toast.Expire(toastExpiredMsg{seq: toast.seq})
	if toast.Visible() {
		t.Error("current showing's timer should dismiss")
	}
}

func TestToastLastWriteWins(t *testing.T) {
	var toast Toast

	toast.Show(ToastInfo, "", "first")
	toast.Show(ToastWarning, "", "second")

	rendered := toast.Render(DefaultStyles())
	if !strings.Contains(rendered, "second") {
		t.Errorf("expected latest text, got %q", rendered)
	}
	if strings.Contains(rendered, "first") {
		t.Errorf("replaced text still rendered: %q", rendered)
	}
}

func TestToastTitlePrefixesRender(t *testing.T) {
	var toast Toast

	toast.Show(ToastError, "AUTH-002", "login required")
	rendered := toast.Render(DefaultStyles())
	if !strings.Contains(rendered, "AUTH-002: login required") {
		t.Errorf("title not rendered as prefix: %q", rendered)
	}

	toast.Show(ToastInfo, "", "plain note")
	rendered = toast.Render(DefaultStyles())
	if strings.Contains(rendered, ":") && !strings.Contains(rendered, "plain note") {
		t.Errorf("untitled toast rendered wrong: %q", rendered)
	}
}

func TestToastDismiss(t *testing.T) {
	var toast Toast

	toast.Show(ToastInfo, "", "note")
	toast.Dismiss()
	if toast.Visible() {
		t.Error("Dismiss should hide immediately")
	}
	if toast.Render(DefaultStyles()) != "" {
		t.Error("hidden toast must render nothing")
	}
}
