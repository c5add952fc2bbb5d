package excel

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/songka/bomcheck/pkg/domain/entities"
	"github.com/songka/bomcheck/pkg/domain/services/quantity"
)

// sheetWriter appends rows to a sheet top to bottom.
type sheetWriter struct {
	file  *excelize.File
	sheet string
	row   int
}

func (sw *sheetWriter) append(values ...interface{}) error {
	sw.row++
	for colIdx, value := range values {
		ref, err := excelize.CoordinatesToCellName(colIdx+1, sw.row)
		if err != nil {
			return err
		}
		if err := sw.file.SetCellValue(sw.sheet, ref, value); err != nil {
			return err
		}
	}
	return nil
}

func (w *Workbook) resetSheet(name string) (*sheetWriter, error) {
	if idx, err := w.file.GetSheetIndex(name); err == nil && idx >= 0 {
		if err := w.file.DeleteSheet(name); err != nil {
			return nil, err
		}
	}
	if _, err := w.file.NewSheet(name); err != nil {
		return nil, err
	}
	return &sheetWriter{file: w.file, sheet: name}, nil
}

// writeReport rebuilds the execution summary and remainder sheets from an
// execution result.
func (w *Workbook) writeReport(result *entities.ExecutionResult) error {
	sw, err := w.resetSheet(SummarySheetName)
	if err != nil {
		return err
	}

	summary := result.ReplacementSummary
	rows := [][]interface{}{
		{"失效料号数量", summary.TotalInvalidFound},
		{"已标记失效料号数量", summary.TotalPreviouslyMarked},
		{"已替换数量", summary.TotalReplaced},
		{"绑定项目数量", len(result.BindingResults)},
		{"绑定分组数量", countGroups(result.BindingResults)},
		{"重要物料数量", len(result.ImportantHits)},
		{},
		{"失效料号明细"},
		{"工作表", "行号", "失效料号", "失效描述", "替换料号", "替换描述"},
	}
	for _, r := range rows {
		if err := sw.append(r...); err != nil {
			return err
		}
	}
	for _, record := range summary.Records {
		if err := sw.append(record.SheetName, record.RowIndex, record.InvalidPartNo,
			record.InvalidDesc, record.ReplacementNo, record.ReplacementDesc); err != nil {
			return err
		}
	}

	if err := sw.append(); err != nil {
		return err
	}
	if err := sw.append("绑定料号统计"); err != nil {
		return err
	}
	if err := sw.append("项目描述", "索引料号", "主料数量", "需求分组", "需求数量",
		"可用数量", "缺少数量", "缺少料号", "满足料号"); err != nil {
		return err
	}
	for _, project := range result.BindingResults {
		for _, group := range project.RequirementResults {
			if err := sw.append(
				project.ProjectDesc,
				project.IndexPartNo,
				quantity.Format(project.MatchedQuantity),
				group.GroupName,
				quantity.Format(group.RequiredQty),
				quantity.Format(group.AvailableQty),
				quantity.Format(group.MissingQty),
				strings.Join(group.MissingChoices, ","),
				formatMatched(group.MatchedOrder, group.MatchedDetails),
			); err != nil {
				return err
			}
		}
	}

	if err := sw.append(); err != nil {
		return err
	}
	if err := sw.append("缺失物料"); err != nil {
		return err
	}
	if err := sw.append("料号", "描述", "缺少数量"); err != nil {
		return err
	}
	for _, item := range result.MissingItems {
		if err := sw.append(item.PartNo, item.Desc, quantity.Format(item.MissingQty)); err != nil {
			return err
		}
	}

	if err := sw.append(); err != nil {
		return err
	}
	if err := sw.append("重要物料统计"); err != nil {
		return err
	}
	if err := sw.append("关键字", "标准关键字", "数量", "命中料号"); err != nil {
		return err
	}
	for _, hit := range result.ImportantHits {
		if err := sw.append(hit.Keyword, hit.ConvertedKeyword,
			quantity.Format(hit.TotalQuantity), formatMatched(hit.MatchedOrder, hit.MatchedParts)); err != nil {
			return err
		}
	}

	if err := sw.append(); err != nil {
		return err
	}
	if err := sw.append("调试信息"); err != nil {
		return err
	}
	for _, line := range result.Trace {
		if err := sw.append(line); err != nil {
			return err
		}
	}

	rw, err := w.resetSheet(RemainderSheetName)
	if err != nil {
		return err
	}
	if err := rw.append("料号", "描述", "数量"); err != nil {
		return err
	}
	for _, item := range result.Remainder {
		if err := rw.append(item.PartNo, item.Desc, quantity.Format(item.Quantity)); err != nil {
			return err
		}
	}

	return nil
}

func countGroups(results []entities.BindingProjectResult) int {
	count := 0
	for _, project := range results {
		count += len(project.RequirementResults)
	}
	return count
}

func formatMatched(order []string, details map[string]float64) string {
	parts := make([]string, 0, len(order))
	for _, partNo := range order {
		parts = append(parts, fmt.Sprintf("%s:%s", partNo, quantity.Format(details[partNo])))
	}
	return strings.Join(parts, ",")
}
