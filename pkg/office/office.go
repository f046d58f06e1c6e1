package office

import (
	"tstidx/internal"
	"tstidx/pkg/office/docx"
	"tstidx/pkg/office/odt"
	"tstidx/pkg/office/ole"
	"tstidx/pkg/office/pdf"
	"tstidx/pkg/office/pptx"
	"tstidx/pkg/office/rtf"
	"tstidx/pkg/office/xls"
	"tstidx/pkg/office/xlsx"
)

func init() {
	internal.RegisterParser(internal.FileTypeDOCX, &docx.OfficeDocxParser{})
	internal.RegisterParser(internal.FileTypeXLSX, &xlsx.OfficeXlsxParser{})
	internal.RegisterParser(internal.FileTypeXLS, &xls.OfficeXlsParser{})
	internal.RegisterParser(internal.FileTypeDOC, &ole.OfficeOleParser{})
	internal.RegisterParser(internal.FileTypePPT, &ole.OfficeOleParser{})
	internal.RegisterParser(internal.FileTypePDF, &pdf.OfficePdfParser{})
	internal.RegisterParser(internal.FileTypePPTX, &pptx.OfficePptxParser{})
	internal.RegisterParser(internal.FileTypeODT, &odt.OfficeOdtParser{})
	internal.RegisterParser(internal.FileTypeRTF, &rtf.OfficeRtfParser{})
}
