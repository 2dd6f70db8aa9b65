package template

// Built-in templates, used until a unit uploads its own under the template
// store keys. They follow the Decree 30 administrative-document layout.

// Token names recognized by the document template.
const (
	TokenDispatchNumber = "<<Số công văn>>"
	TokenDay            = "<<Ngày>>"
	TokenMonth          = "<<Tháng>>"
	TokenYear           = "<<Năm>>"
	TokenTitle          = "<<Tiêu đề>>"
	TokenAbout          = "<<Về việc>>"
	TokenRecipient      = "<<Nơi nhận>>"
)

// Token names recognized by the report template.
const (
	TokenPeriod     = "<<Kỳ>>"
	TokenRangeStart = "<<Ngày bắt đầu>>"
	TokenRangeEnd   = "<<Ngày kết thúc>>"
	TokenAIBody     = "<<Nội dung AI>>"
)

// DefaultDocumentTemplate is the blank administrative-document shell: header
// with national motto, titled body, recipient/signature footer.
const DefaultDocumentTemplate = `
<table style="width: 100%; border-collapse: collapse; border: none; font-family: 'Times New Roman', serif; margin-bottom: 20px; line-height: 1.3;">
  <tr>
    <td style="width: 40%; text-align: center; vertical-align: top; font-size: 13pt;">
      <strong>CÔNG AN TP HÀ NỘI</strong><br />
      <strong>CÔNG AN XÃ KIỀU PHÚ</strong><br />
      <hr style="width: 30%; border: 1px solid black; margin: 5px auto;" />
      Số: <<Số công văn>>
    </td>
    <td style="width: 60%; text-align: center; vertical-align: top; font-size: 13pt;">
      <strong>CỘNG HÒA XÃ HỘI CHỦ NGHĨA VIỆT NAM</strong><br />
      <strong>Độc lập - Tự do - Hạnh phúc</strong><br />
      <hr style="width: 30%; border: 1px solid black; margin: 5px auto;" />
      <em>Kiều Phú, ngày <<Ngày>> tháng <<Tháng>> năm <<Năm>></em>
    </td>
  </tr>
</table>
<div style="font-family: 'Times New Roman', serif; font-size: 14pt; line-height: 1.5; text-align: justify;">
  <h3 style="text-align: center; font-weight: bold; margin: 20px 0; text-transform: uppercase;"><<Tiêu đề>></h3>
  <p style="text-align: center; font-weight: bold; margin-top: 5px; margin-bottom: 20px;"><<Về việc>></p>
  <div style="text-indent: 1.27cm; min-height: 200px;">
     Kính gửi: ..........................................................................
     <br/><br/>
     (Nội dung văn bản soạn thảo tại đây...)
  </div>
</div>
<table style="width: 100%; border-collapse: collapse; border: none; font-family: 'Times New Roman', serif; margin-top: 30px; line-height: 1.3;">
  <tr>
    <td style="width: 50%; text-align: left; vertical-align: top; font-size: 12pt; font-style: italic;">
      <strong><em>Nơi nhận:</em></strong><br />
      - <<Nơi nhận>>;<br />
      - Lưu: VT, CSTT.
    </td>
    <td style="width: 50%; text-align: center; vertical-align: top; font-size: 13pt;">
      <strong>TRƯỞNG CÔNG AN XÃ</strong><br />
      <br /><br /><br /><br />
      <strong>Đại úy Nguyễn Văn A</strong>
    </td>
  </tr>
</table>
`

// DefaultReportTemplate wraps the AI-generated body in the periodic report
// shell.
const DefaultReportTemplate = `
<table style="width: 100%; border-collapse: collapse; border: none; font-family: 'Times New Roman', serif; margin-bottom: 15px; line-height: 1.3;">
  <tr>
    <td style="width: 40%; text-align: center; vertical-align: top; font-size: 13pt;">
      <strong>CÔNG AN TP HÀ NỘI</strong><br />
      <strong>CÔNG AN XÃ KIỀU PHÚ</strong><br />
      <hr style="width: 30%; border: 1px solid black; margin: 5px auto;" />
    </td>
    <td style="width: 60%; text-align: center; vertical-align: top; font-size: 13pt;">
      <strong>CỘNG HÒA XÃ HỘI CHỦ NGHĨA VIỆT NAM</strong><br />
      <strong>Độc lập - Tự do - Hạnh phúc</strong><br />
      <hr style="width: 30%; border: 1px solid black; margin: 5px auto;" />
      <em>Kiều Phú, ngày ...... tháng ...... năm 202...</em>
    </td>
  </tr>
</table>
<div style="font-family: 'Times New Roman', serif; font-size: 14pt; line-height: 1.5; margin-top: 20px;">
  <h3 style="text-align: center; font-weight: bold; margin: 0;">BÁO CÁO</h3>
  <h3 style="text-align: center; font-weight: bold; margin: 0;">KẾT QUẢ CÔNG TÁC CSTT <<Kỳ>></h3>
  <p style="text-align: center; font-style: italic; margin-bottom: 20px;">(Từ ngày <<Ngày bắt đầu>> đến ngày <<Ngày kết thúc>>)</p>
  <div id="ai-content">
    <<Nội dung AI>>
  </div>
</div>
<table style="width: 100%; border-collapse: collapse; border: none; font-family: 'Times New Roman', serif; margin-top: 30px; line-height: 1.3;">
  <tr>
    <td style="width: 50%; text-align: left; vertical-align: top; font-size: 12pt; font-style: italic;">
      <strong><em>Nơi nhận:</em></strong><br />
      - Đ/c Trưởng CAX (để b/c);<br />
      - Lưu: HS, CSTT.
    </td>
    <td style="width: 50%; text-align: center; vertical-align: top; font-size: 13pt;">
      <strong>TỔ TRƯỞNG TỔ CSTT</strong><br />
      <br /><br /><br /><br />
      <strong>Thiếu tá Đỗ Mạnh Hùng</strong>
    </td>
  </tr>
</table>
`

// DefaultReportDirections seeds the "phương hướng nhiệm vụ" section until the
// unit saves its own text.
const DefaultReportDirections = `1. Tiếp tục thực hiện nghiêm túc các kế hoạch, chuyên đề công tác của Công an cấp trên.
2. Tăng cường công tác tuần tra kiểm soát, xử lý vi phạm trật tự đô thị, trật tự công cộng, trật tự an toàn giao thông trên địa bàn.
3. Duy trì nghiêm chế độ trực ban, tiếp nhận và giải quyết tin báo tố giác tội phạm.
4. Phối hợp với các ban ngành đoàn thể làm tốt công tác tuyên truyền, vận động nhân dân chấp hành pháp luật.
5. Thực hiện tốt công tác quản lý cư trú, quản lý ngành nghề kinh doanh có điều kiện.`

// Names the built-in templates are stored and looked up under.
const (
	NameDocument = "document"
	NameReport   = "report"
)

// Default returns the built-in template for a known name.
func Default(name string) (string, bool) {
	switch name {
	case NameDocument:
		return DefaultDocumentTemplate, true
	case NameReport:
		return DefaultReportTemplate, true
	default:
		return "", false
	}
}
