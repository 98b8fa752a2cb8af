package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/ecowatch/notice-api/internal/model"
)

// tagDelimiter joins list fields into one cell.
const tagDelimiter = ", "

// Headers is the full export column set, matching the dashboard's
// CSV download.
var Headers = []string{
	"标题", "部门", "分类", "发布日期", "截止日期", "资助金额", "摘要", "原文链接", "标签",
}

// ReportHeaders is the reduced column set used for weekly/monthly
// report downloads.
var ReportHeaders = []string{
	"标题", "部门", "分类", "发布日期", "截止日期", "摘要",
}

// Row flattens a record into the full column set, in Headers order.
// Optional fields render as "-" so the spreadsheet stays rectangular.
func Row(n *model.Notification) []string {
	return []string{
		n.Title,
		n.Department,
		string(n.Category),
		n.PublishDate,
		orDash(n.Deadline),
		orDash(n.FundingAmount),
		n.Summary,
		n.OriginalURL,
		strings.Join(n.Tags, tagDelimiter),
	}
}

// RowMap flattens a record into field-name keyed scalar strings so
// external formatters can consume records without reaching into the
// model. List fields are joined with the tag delimiter.
func RowMap(n *model.Notification) map[string]string {
	return map[string]string{
		"id":             n.ID,
		"title":          n.Title,
		"department":     n.Department,
		"departmentCode": n.DepartmentCode,
		"category":       string(n.Category),
		"publishDate":    n.PublishDate,
		"deadline":       n.Deadline,
		"fundingAmount":  n.FundingAmount,
		"summary":        n.Summary,
		"originalUrl":    n.OriginalURL,
		"tags":           strings.Join(n.Tags, tagDelimiter),
		"keywords":       strings.Join(n.Keywords, tagDelimiter),
		"notes":          n.Notes,
	}
}

// WriteCSV renders records with the full column set. The output starts
// with a UTF-8 BOM so Excel opens the Chinese text correctly.
func WriteCSV(w io.Writer, records []model.Notification) error {
	return write(w, Headers, records, Row)
}

// WriteReportCSV renders records with the report column set.
func WriteReportCSV(w io.Writer, records []model.Notification) error {
	return write(w, ReportHeaders, records, func(n *model.Notification) []string {
		return []string{
			n.Title,
			n.Department,
			string(n.Category),
			n.PublishDate,
			orDash(n.Deadline),
			n.Summary,
		}
	})
}

func write(w io.Writer, headers []string, records []model.Notification, row func(*model.Notification) []string) error {
	if _, err := w.Write([]byte("\ufeff")); err != nil {
		return fmt.Errorf("write BOM: %w", err)
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(headers); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i := range records {
		if err := cw.Write(row(&records[i])); err != nil {
			return fmt.Errorf("write record %q: %w", records[i].ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// Filename builds a dated download name like 环保科技通知_2024-01-10.csv.
func Filename(prefix string, now time.Time) string {
	return fmt.Sprintf("%s_%s.csv", prefix, now.Format("2006-01-02"))
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
