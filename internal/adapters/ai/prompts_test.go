package ai

import (
	"strings"
	"testing"

	"github.com/patroldesk/core/internal/domain/entities"
)

func sampleRequest() *entities.VerificationRequest {
	return &entities.VerificationRequest{
		DispatchNumber:   "123/CV-CAH",
		Date:             "2025-03-05",
		OffenderName:     "Nguyễn Văn B",
		YearOfBirth:      "1990",
		IDCard:           "012345678901",
		Address:          "Thôn 3, xã Kiều Phú",
		ViolationContent: "Điều khiển xe máy không đội mũ bảo hiểm",
	}
}

func TestFillTemplatePromptEmbedsFieldsAndTemplate(t *testing.T) {
	req := sampleRequest()
	req.VerificationResult = "Có cư trú tại địa phương"
	tpl := "Kính gửi <<Nơi nhận>>, về trường hợp <<Họ tên>>"

	prompt := fillTemplatePrompt(req, tpl)

	for _, want := range []string{
		req.DispatchNumber,
		req.OffenderName,
		req.IDCard,
		req.VerificationResult,
		tpl,
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
	if strings.Contains(prompt, "%!") {
		t.Errorf("malformed format output: %s", prompt)
	}
}

func TestFillTemplatePromptDefaultResult(t *testing.T) {
	prompt := fillTemplatePrompt(sampleRequest(), "mẫu")
	if !strings.Contains(prompt, "Đã xác minh thực tế") {
		t.Error("empty verification result should fall back to the default phrase")
	}
}

func TestDraftLetterPromptDefaultResult(t *testing.T) {
	prompt := draftLetterPrompt(sampleRequest())
	if !strings.Contains(prompt, "chưa phát hiện thêm vi phạm mới") {
		t.Error("empty verification result should fall back to the default phrase")
	}
	if !strings.Contains(prompt, "Nguyễn Văn B") {
		t.Error("prompt missing offender name")
	}
}

func TestReportPromptEmbedsData(t *testing.T) {
	data := `{"accidentCount": 2, "reports113": []}`
	prompt := reportPrompt(data, "nêu bật chuyên đề", "1. Tuần tra đêm")

	for _, want := range []string{data, "nêu bật chuyên đề", "1. Tuần tra đêm"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestReportPromptFallbacks(t *testing.T) {
	prompt := reportPrompt("{}", "", "")
	if !strings.Contains(prompt, "Không có") {
		t.Error("empty suggestions should fall back")
	}
	if !strings.Contains(prompt, "Duy trì công tác tuần tra, xử lý vi phạm.") {
		t.Error("empty directions should fall back")
	}
}

func TestStripFences(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"```html\n<p>hi</p>\n```", "<p>hi</p>"},
		{"```\n<p>hi</p>\n```", "<p>hi</p>"},
		{"<p>plain</p>", "<p>plain</p>"},
	}
	for _, tt := range tests {
		if got := stripFences(tt.in); got != tt.want {
			t.Errorf("stripFences(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
