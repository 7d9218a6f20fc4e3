package extract

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"testing"
)

func TestTextFromBytesPlainText(t *testing.T) {
	text := "Agent: Hello.\nClaimant: Hi there."
	got, err := TextFromBytes(context.Background(), []byte(text), "text/plain; charset=utf-8", "call.txt")
	if err != nil {
		t.Fatalf("TextFromBytes: %v", err)
	}
	if got != text {
		t.Fatalf("expected passthrough text, got %q", got)
	}
}

func TestTextFromBytesExtensionFallback(t *testing.T) {
	got, err := TextFromBytes(context.Background(), []byte("line one"), "application/octet-stream", "call.txt")
	if err != nil {
		t.Fatalf("TextFromBytes: %v", err)
	}
	if got != "line one" {
		t.Fatalf("expected text via extension fallback, got %q", got)
	}
}

func TestTextFromBytesUnsupported(t *testing.T) {
	_, err := TextFromBytes(context.Background(), []byte{0x89, 0x50, 0x4e, 0x47}, "image/png", "pic.png")
	if !errors.Is(err, ErrUnsupported) {
		t.Fatalf("expected ErrUnsupported, got %v", err)
	}
}

func TestTextFromBytesInvalidUTF8(t *testing.T) {
	_, err := TextFromBytes(context.Background(), []byte{0xff, 0xfe, 0xfd}, "text/plain", "call.txt")
	if err == nil {
		t.Fatalf("expected error for invalid utf-8")
	}
}

func TestTextFromBytesDocx(t *testing.T) {
	doc := `<?xml version="1.0"?><w:document xmlns:w="ns"><w:body><w:p><w:r><w:t>Agent: Hello.</w:t></w:r></w:p><w:p><w:r><w:t>Claimant: My car was stolen.</w:t></w:r></w:p></w:body></w:document>`

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	f, err := zw.Create("word/document.xml")
	if err != nil {
		t.Fatalf("create zip entry: %v", err)
	}
	if _, err := f.Write([]byte(doc)); err != nil {
		t.Fatalf("write zip entry: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}

	got, err := TextFromBytes(context.Background(), buf.Bytes(), "application/zip", "call.docx")
	if err != nil {
		t.Fatalf("TextFromBytes: %v", err)
	}
	want := "Agent: Hello.\nClaimant: My car was stolen."
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestTextFromBytesCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := TextFromBytes(ctx, []byte("x"), "text/plain", "call.txt")
	if err == nil {
		t.Fatalf("expected context error")
	}
}
