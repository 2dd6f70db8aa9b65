package ai

import (
	"fmt"

	"github.com/patroldesk/core/internal/domain/entities"
)

const extractPrompt = `Hãy trích xuất thông tin từ hình ảnh công văn/văn bản này. Trả về JSON với các trường: dispatchNumber (số công văn), date (ngày tháng năm), offenderName (họ tên người vi phạm), idCard (CCCD/CMND), yob (năm sinh), address (hộ khẩu/địa chỉ), violationContent (nội dung vi phạm).`

const reconstructPrompt = `
Bạn là một chuyên viên văn thư lưu trữ cao cấp. Nhiệm vụ của bạn là nhìn vào các hình ảnh văn bản hành chính Việt Nam được cung cấp và tái tạo lại nội dung của nó thành mã HTML chuẩn.

YÊU CẦU KỸ THUẬT:
1. **Font chữ & Định dạng:** Sử dụng font 'Times New Roman'. Cỡ chữ 14pt. Giãn dòng 1.5 (line-height: 1.5).
2. **Phần đầu (Header):** Tái tạo chính xác Quốc hiệu, Tiêu ngữ (Bên phải) và Tên cơ quan, Số ký hiệu (Bên trái) bằng bảng (table) không viền, canh giữa 2 cột.
3. **Nội dung:**
   - Giữ nguyên toàn bộ nội dung văn bản, không sửa lỗi chính tả.
   - Các tiêu đề (Hồi tố, Quyết định...) phải in đậm, canh giữa.
   - Các đoạn văn phải được canh đều (justify) và thụt đầu dòng 1.27cm (sử dụng style="text-indent: 1.27cm").
4. **Phần cuối (Footer):** Tái tạo phần Nơi nhận và Chữ ký/Đóng dấu bằng bảng 2 cột.
5. **Output:** Chỉ trả về mã HTML (nội dung bên trong thẻ body). KHÔNG trả về Markdown. KHÔNG giải thích thêm.

Mẫu CSS inline cần dùng:
- style="font-family: 'Times New Roman', serif; font-size: 14pt; line-height: 1.5;"
- style="text-align: justify; text-indent: 1.27cm;"
`

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

// fillTemplatePrompt instructs the model to substitute placeholders only,
// leaving the rest of the template untouched.
func fillTemplatePrompt(req *entities.VerificationRequest, template string) string {
	return fmt.Sprintf(`
Bạn là công cụ điền dữ liệu tự động (Fill-in-the-blanks).

DỮ LIỆU ĐẦU VÀO:
- Số công văn: %s
- Ngày yêu cầu: %s
- Họ tên: %s
- Năm sinh: %s
- CCCD: %s
- Hộ khẩu: %s
- Nội dung vi phạm: %s
- Kết quả xác minh: %s

MẪU VĂN BẢN:
"""
%s
"""

YÊU CẦU TUYỆT ĐỐI:
1. Nhiệm vụ DUY NHẤT là tìm các từ khóa trong dấu <<...>> (ví dụ <<Họ tên>>, <<Số công văn>>, <<Kết quả xác minh>>...) và thay thế bằng dữ liệu tương ứng ở trên.
2. TUYỆT ĐỐI KHÔNG thay đổi bất kỳ câu chữ, từ ngữ, dấu câu nào khác của mẫu văn bản.
3. KHÔNG được phép chỉnh sửa văn phong hay viết lại câu. Giữ nguyên văn bản gốc chính xác 100%% ngoại trừ các vị trí đã điền.
4. Trả về toàn bộ nội dung văn bản sau khi đã điền.
`,
		req.DispatchNumber,
		req.Date,
		req.OffenderName,
		req.YearOfBirth,
		req.IDCard,
		req.Address,
		req.ViolationContent,
		orDefault(req.VerificationResult, "Đã xác minh thực tế, đối tượng có cư trú tại địa chỉ trên."),
		template,
	)
}

// draftLetterPrompt asks the model to draft the whole response letter when no
// template is stored.
func draftLetterPrompt(req *entities.VerificationRequest) string {
	return fmt.Sprintf(`
Bạn là một cán bộ tổng hợp thuộc đội Cảnh sát trật tự.
Hãy soạn thảo một công văn trả lời xác minh dựa trên thông tin sau:
- Số công văn yêu cầu: %s
- Ngày yêu cầu: %s
- Đối tượng xác minh: %s (SN: %s, CCCD: %s)
- Địa chỉ: %s
- Nội dung vi phạm cần xác minh: %s
- Kết quả xác minh thực tế: %s

Yêu cầu:
- Văn phong hành chính công vụ, trang trọng.
- Đầy đủ thể thức văn bản hành chính cơ bản.
- Chỉ trả về nội dung văn bản.
`,
		req.DispatchNumber,
		req.Date,
		req.OffenderName,
		req.YearOfBirth,
		req.IDCard,
		req.Address,
		req.ViolationContent,
		orDefault(req.VerificationResult, "Qua xác minh thực tế, đối tượng có cư trú tại địa chỉ trên, hiện tại chưa phát hiện thêm vi phạm mới."),
	)
}

// reportPrompt builds the periodic-report generation prompt. The aggregated
// statistics travel as a JSON blob the model reads field by field.
func reportPrompt(dataJSON, suggestions, directions string) string {
	return fmt.Sprintf(`
Bạn là một cán bộ Cảnh sát trật tự (CSTT) chuyên nghiệp. Bạn KHÔNG phải Cảnh sát hình sự.
Nhiệm vụ của bạn là viết báo cáo kết quả công tác dựa trên dữ liệu.

DỮ LIỆU ĐẦU VÀO (JSON):
%s

1. GỢI Ý TỪ NGƯỜI DÙNG: "%s"
2. PHƯƠNG HƯỚNG NHIỆM VỤ (Nội dung cơ sở): "%s"
3. CHUYÊN ĐỀ ĐANG TRIỂN KHAI: danh sách 'activeCampaigns' trong JSON.
4. DANH SÁCH TIN BÁO 113: trường 'reports113' trong JSON.

NHIỆM VỤ:
Viết phần NỘI DUNG CHÍNH của Báo Cáo (HTML body content).

QUY ĐỊNH VỀ ĐỊNH DẠNG (BẮT BUỘC):
1. Font chữ Times New Roman, size 14pt, giãn dòng 1.5.
2. **TIÊU ĐỀ CÁC MỤC (1, 2, 3...)**: Phải IN ĐẬM và THỤT ĐẦU DÒNG 1 TAB (1.27cm).
   Code mẫu: <h4 style="font-weight: bold; text-indent: 1.27cm; margin-top: 15px; margin-bottom: 5px;">1. Tình hình chung</h4>
3. **Nội dung văn bản**: Canh đều (justify), thụt đầu dòng đoạn văn 1.27cm.
4. **Danh sách**: Sử dụng gạch đầu dòng (-) thủ công, thụt đầu dòng 1.27cm.

CẤU TRÚC BÁO CÁO:

<h4>1. Tình hình chung</h4>
- Nhận định tình hình ANTT trong kỳ, nêu số vụ tai nạn giao thông từ 'accidentCount' và mô tả ngắn gọn các vụ việc trong 'accidents' nếu có.

<h4>2. Kết quả thực hiện các mặt công tác</h4>
- 2.1. Công tác Đăng ký xe: liệt kê số liệu đăng ký xe mô tô và ô tô theo từng loại (Đăng ký lần đầu, Sang tên, Cấp đổi, Thu hồi) từ 'registrations'.
- 2.2. Kết quả thực hiện Chuyên đề & Sự kiện: phân tích kỹ dữ liệu 'activeCampaigns', nhấn mạnh KẾT QUẢ ĐẠT ĐƯỢC (số liệu/chỉ tiêu) của từng chuyên đề.
- 2.3. Công tác tiếp nhận và xử lý tin báo: nếu có 'reports113' hãy liệt kê ngắn gọn các vụ việc; nếu không có, ghi chính xác câu: "Duy trì nghiêm túc công tác trực ban, trực 113, trực chỉ huy. Sẵn sàng tiếp nhận và giải quyết kịp thời các tin báo liên quan đến an ninh trật tự (gây rối trật tự công cộng, đánh nhau, tai nạn giao thông...). Trong kỳ không phát sinh vụ việc phức tạp."
- 2.4. Các mặt công tác khác: công tác tham mưu, tuần tra kiểm soát, xử lý vi phạm; các kết quả nổi bật từ 'recentHighlights'.

<h4>3. Đánh giá, nhận xét</h4>
- Tự viết đánh giá ngắn gọn dựa trên kết quả (ưu điểm, tồn tại).

<h4>4. Phương hướng nhiệm vụ kỳ tới</h4>
- Tổng hợp từ 'PHƯƠNG HƯỚNG NHIỆM VỤ' (nòng cốt), danh sách chuyên đề đang triển khai, và kết quả công tác (tai nạn tăng thì tăng cường giảm tai nạn, chỉ tiêu đạt thấp thì đẩy mạnh thực hiện). Viết thành các gạch đầu dòng rõ ràng, văn phong hành chính.

LƯU Ý:
- Hãy viết thành văn bản hoàn chỉnh, lời văn hành chính, trang trọng.
- Điền các số liệu chính xác từ dữ liệu đầu vào.
- KHÔNG trả về Markdown. Chỉ trả về HTML body.
`,
		dataJSON,
		orDefault(suggestions, "Không có"),
		orDefault(directions, "Duy trì công tác tuần tra, xử lý vi phạm."),
	)
}
