package template

import (
	"strings"
	"testing"
)

func TestRenderSubstitutesTokens(t *testing.T) {
	out := Render("Số: <<Số công văn>> ngày <<Ngày>>", map[string]string{
		TokenDispatchNumber: "15/CAX",
		TokenDay:            "05",
	})
	if out != "Số: 15/CAX ngày 05" {
		t.Errorf("unexpected output: %q", out)
	}
}

func TestRenderCaseInsensitive(t *testing.T) {
	out := Render("<<TIÊU ĐỀ>> / <<tiêu đề>>", map[string]string{
		TokenTitle: "CÔNG VĂN",
	})
	if out != "CÔNG VĂN / CÔNG VĂN" {
		t.Errorf("unexpected output: %q", out)
	}
}

func TestRenderLeavesUnknownTokensVerbatim(t *testing.T) {
	in := "đến <<Nơi nhận>> và <<Không tồn tại>>"
	out := Render(in, map[string]string{TokenRecipient: "UBND xã"})
	if out != "đến UBND xã và <<Không tồn tại>>" {
		t.Errorf("unexpected output: %q", out)
	}
}

func TestRenderDoesNotRescanReplacements(t *testing.T) {
	out := Render("<<Ngày>>", map[string]string{
		TokenDay:   "<<Tháng>>",
		TokenMonth: "03",
	})
	if out != "<<Tháng>>" {
		t.Errorf("replacement value was re-scanned: %q", out)
	}
}

func TestRenderEmptyValueSet(t *testing.T) {
	in := "<<Ngày>> giữ nguyên"
	if out := Render(in, nil); out != in {
		t.Errorf("unexpected output: %q", out)
	}
}

func TestRendererReuse(t *testing.T) {
	r := NewRenderer(map[string]string{TokenYear: "2025"})
	for i := 0; i < 2; i++ {
		if out := r.Render("năm <<Năm>>"); out != "năm 2025" {
			t.Fatalf("pass %d: %q", i, out)
		}
	}
}

func TestDefaultLookup(t *testing.T) {
	doc, ok := Default(NameDocument)
	if !ok || !strings.Contains(doc, TokenDispatchNumber) {
		t.Error("document default missing or lacks dispatch-number token")
	}
	rep, ok := Default(NameReport)
	if !ok || !strings.Contains(rep, TokenAIBody) {
		t.Error("report default missing or lacks AI-body token")
	}
	if _, ok := Default("unknown"); ok {
		t.Error("unknown name should not resolve")
	}
}

func TestDefaultTemplatesRenderCleanly(t *testing.T) {
	out := Render(DefaultReportTemplate, map[string]string{
		TokenPeriod:     "TUẦN",
		TokenRangeStart: "2025-03-03",
		TokenRangeEnd:   "2025-03-09",
		TokenAIBody:     "<p>nội dung</p>",
	})
	for _, tok := range []string{TokenPeriod, TokenRangeStart, TokenRangeEnd, TokenAIBody} {
		if strings.Contains(out, tok) {
			t.Errorf("token %s left in rendered report", tok)
		}
	}
}
