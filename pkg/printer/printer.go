package printer

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/oshokin/plinter/pkg/body"
	"github.com/oshokin/plinter/pkg/message"
)

const (
	// RedactionMarker replaces the value of a filtered header.
	RedactionMarker = "██"

	requestArrow  = "-->"
	responseArrow = "<--"
	requestTitle  = "Request"
	responseTitle = "Response"
	failurePrefix = "[plinter]"

	headerCornerFirst  = "┌ "
	headerCornerMiddle = "├ "
	headerCornerLast   = "└ "
	headerIndent       = "  "
)

// Printer renders messages according to its Config and feeds the lines to the configured Sink.
type Printer struct {
	cfg *Config
}

// New returns a Printer. A nil cfg means DefaultConfig.
func New(cfg *Config) *Printer {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	return &Printer{cfg: cfg}
}

// Config returns the configuration of the printer.
func (p *Printer) Config() *Config {
	return p.cfg
}

// RenderRequest returns the lines for req. No lines are returned at level NONE,
// when only responses are rendered, or when req is nil.
func (p *Printer) RenderRequest(req *message.Request) []string {
	if req == nil || !p.cfg.LogsRequests() {
		return nil
	}

	summary := requestSummary(req)

	if p.cfg.level == LevelBasic {
		return []string{basicLine(requestArrow, req.ExchangeID(), summary)}
	}

	f := newFrame(p.cfg.maxLineLength, blockTitle(requestTitle, req.ExchangeID()))
	f.addSection(plainRows(summary))
	f.addSection(p.headerRows(req.Headers()))

	if p.cfg.LogsBodies() {
		f.addSection(p.bodyRows("request", req.Body()))
	}

	return f.close()
}

// RenderResponse returns the lines for resp. No lines are returned at level NONE,
// when only requests are rendered, or when resp is nil.
func (p *Printer) RenderResponse(resp *message.Response) []string {
	if resp == nil || !p.cfg.LogsResponses() {
		return nil
	}

	summary := responseSummary(resp)

	if p.cfg.level == LevelBasic {
		return []string{basicLine(responseArrow, resp.ExchangeID(), summary)}
	}

	f := newFrame(p.cfg.maxLineLength, blockTitle(responseTitle, resp.ExchangeID()))
	f.addSection(plainRows(summary))
	f.addSection(p.headerRows(resp.Headers()))

	if p.cfg.LogsBodies() {
		f.addSection(p.bodyRows("response", resp.Body()))
	}

	return f.close()
}

// RenderFailure returns the line for an exchange that produced no response.
// It follows the response side of the output filter.
func (p *Printer) RenderFailure(req *message.Request, elapsed time.Duration, err error) []string {
	if !p.cfg.LogsResponses() {
		return nil
	}

	var (
		exchangeID string
		target     string
	)

	if req != nil {
		exchangeID = req.ExchangeID()
		target = fmt.Sprintf(" %s %s", req.Method(), req.URL())
	}

	reason := "unknown error"
	if err != nil {
		reason = err.Error()
	}

	line := fmt.Sprintf("HTTP FAILED:%s (%s): %s", target, formatElapsed(elapsed), reason)

	return []string{sanitize(basicLine(responseArrow, exchangeID, line))}
}

// PrintRequest renders req and sends every line to the sink.
func (p *Printer) PrintRequest(req *message.Request) {
	p.emit("request", func() []string {
		return p.RenderRequest(req)
	})
}

// PrintResponse renders resp and sends every line to the sink.
func (p *Printer) PrintResponse(resp *message.Response) {
	p.emit("response", func() []string {
		return p.RenderResponse(resp)
	})
}

// PrintFailure renders a failed exchange and sends the line to the sink.
func (p *Printer) PrintFailure(req *message.Request, elapsed time.Duration, err error) {
	p.emit("failure", func() []string {
		return p.RenderFailure(req, elapsed, err)
	})
}

// emit never lets a panic escape: a fault while rendering or inside the sink
// is reported as a single line instead.
func (p *Printer) emit(kind string, render func() []string) {
	defer func() {
		if r := recover(); r != nil {
			p.logQuietly(fmt.Sprintf("%s failed to print %s: %v", failurePrefix, kind, r))
		}
	}()

	lines := render()
	if len(lines) == 0 {
		return
	}

	if p.cfg.blockSink {
		p.cfg.sink.Log(strings.Join(lines, "\n"))

		return
	}

	for _, line := range lines {
		p.cfg.sink.Log(line)
	}
}

func (p *Printer) logQuietly(line string) {
	defer func() {
		_ = recover()
	}()

	p.cfg.sink.Log(line)
}

func (p *Printer) headerRows(headers message.Headers) []row {
	if headers.Len() == 0 {
		return nil
	}

	rows := []row{{text: "Headers:"}}

	for i := range headers.Len() {
		header := headers.At(i)

		value := header.Value
		if p.cfg.IsFiltered(header.Name) {
			value = RedactionMarker
		}

		rows = append(rows, row{
			text:   headerTag(i, headers.Len()) + header.Name + ": " + value,
			indent: headerIndent,
		})
	}

	return rows
}

func headerTag(index, total int) string {
	switch {
	case total == 1:
		return ""
	case index == 0:
		return headerCornerFirst
	case index == total-1:
		return headerCornerLast
	default:
		return headerCornerMiddle
	}
}

func (p *Printer) bodyRows(side string, b *message.Body) []row {
	plan := body.ClassifyBody(b, p.cfg.BodyOptions())

	switch plan.Kind() {
	case body.KindText:
		text := plan.Text()
		if p.cfg.prettyPrint {
			text = prettify(text, plan.Format())
		}

		return append(plainRows("Body:"), plainRows(splitLines(text)...)...)
	case body.KindOmitted:
		return markerRows(fmt.Sprintf("Omitted %s body: %s", side, plan.Reason()),
			p.describeSize(plan.Size()),
			fmt.Sprintf("Omitted: %s", plan.Reason()))
	case body.KindMultipart:
		return markerRows(fmt.Sprintf("Multipart %s body: %d parts, boundary %q", side, plan.Parts(), plan.Boundary()),
			p.describeSize(plan.Size()),
			fmt.Sprintf("Multipart: %d parts", plan.Parts()))
	default:
		return nil
	}
}

// describeSize formats a body size; an unknown size is described by the ceiling it exceeded.
func (p *Printer) describeSize(size int64) string {
	if size < 0 {
		return "exceeds " + humanize.Bytes(uint64(p.cfg.MaxBodySize())) //nolint:gosec // Ceiling is always positive.
	}

	return humanize.Bytes(uint64(size))
}

func requestSummary(req *message.Request) string {
	return joinFields(req.Method().String(), req.URL(), protocolField(req.Protocol()))
}

func responseSummary(resp *message.Response) string {
	status := strconv.Itoa(resp.StatusCode())
	if resp.StatusMessage() != "" {
		status += " " + resp.StatusMessage()
	}

	return joinFields(status, protocolField(resp.Protocol()), resp.URL(),
		"("+formatElapsed(resp.Elapsed())+")")
}

func protocolField(protocol message.Protocol) string {
	if protocol == message.ProtocolUnknown {
		return ""
	}

	return protocol.String()
}

func joinFields(fields ...string) string {
	var line string

	for _, field := range fields {
		if field == "" {
			continue
		}

		if line != "" {
			line += " "
		}

		line += field
	}

	return line
}

func basicLine(arrow, exchangeID, summary string) string {
	if exchangeID != "" {
		return sanitize(arrow + " [" + exchangeID + "] " + summary)
	}

	return sanitize(arrow + " " + summary)
}

func blockTitle(title, exchangeID string) string {
	if exchangeID == "" {
		return title
	}

	return title + " [" + exchangeID + "]"
}

// formatElapsed rounds to milliseconds once the duration reaches one.
func formatElapsed(elapsed time.Duration) string {
	if elapsed >= time.Millisecond {
		return elapsed.Round(time.Millisecond).String()
	}

	return elapsed.String()
}
