package tui

import (
	"encoding/base64"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/tinytelemetry/lucky/internal/luckyapi"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
)

var errNoShareImage = errors.New("请先生成分享卡")

// shareCardMsg carries the /generate_share_card outcome.
type shareCardMsg struct {
	card luckyapi.ShareCard
	err  error
}

func (shareCardMsg) buttonID() string { return "share-btn" }

// shareRequest builds the card request for the active page: the last
// evaluation on the number page, the last draw on the lucky page.
func (a *App) shareRequest() (luckyapi.ShareCardRequest, error) {
	switch a.tabs.Active() {
	case TabNumber:
		ev := a.state.LastEvaluation
		if ev == nil {
			return luckyapi.ShareCardRequest{}, errors.New("请先完成号码评估")
		}
		return luckyapi.ShareCardRequest{
			Type: luckyapi.ShareNumber,
			Content: map[string]any{
				"number":     ev.Number,
				"price":      ev.Result.Price,
				"level":      ev.Result.Level,
				"suggestion": ev.Result.Suggestion,
			},
		}, nil
	case TabLucky:
		d := a.state.LastDraw
		if d == nil {
			return luckyapi.ShareCardRequest{}, errors.New("请先完成抽奖")
		}
		return luckyapi.ShareCardRequest{
			Type: luckyapi.ShareLucky,
			Content: map[string]any{
				"prize":   d.Prize,
				"message": d.Message,
				"score":   d.Score,
			},
		}, nil
	}
	return luckyapi.ShareCardRequest{}, errors.New("当前页面不支持分享")
}

// generateShareCard requests a card for the active page.
func (a *App) generateShareCard() tea.Cmd {
	status := a.state.Elements.Get("share-status")
	if a.state.Elements.Get("share-btn").Disabled {
		return nil
	}
	req, err := a.shareRequest()
	if err != nil {
		status.SetError(err.Error())
		return nil
	}

	a.begin("share-btn", "生成中...")
	a.state.ShareImage = ""
	status.Hidden = true

	ctx, service := a.ctx, a.service
	return tea.Batch(guard("share-btn", func() tea.Msg {
		card, err := service.GenerateShareCard(ctx, req)
		return shareCardMsg{card: card, err: err}
	}), a.startSpinner())
}

func (a *App) handleShareCard(msg shareCardMsg) tea.Cmd {
	status := a.state.Elements.Get("share-status")
	if msg.err != nil {
		log.Printf("tui: share card: %v", msg.err)
		status.SetError(failureText(msg.err, msgShareUnavailable))
		return nil
	}
	a.state.ShareImage = msg.card.Image
	status.SetText(fmt.Sprintf("分享卡已生成 (%s 保存，%s 复制)",
		a.keys.SaveShare.Help().Key, a.keys.CopyShare.Help().Key))
	status.Hidden = false
	return nil
}

// shareSavedMsg reports where the card was written.
type shareSavedMsg struct {
	path string
	err  error
}

// saveShareImage writes the cached card to the share directory.
func (a *App) saveShareImage() tea.Cmd {
	image, dir := a.state.ShareImage, a.opts.ShareDir
	if image == "" {
		a.state.Elements.Get("share-status").SetError(errNoShareImage.Error())
		return nil
	}
	// two saves within one second must not overwrite each other
	name := fmt.Sprintf("lucky-share-%s-%s", time.Now().Format("20060102-150405"), uuid.NewString()[:8])
	return func() tea.Msg {
		path, err := writeDataURI(dir, name, image)
		return shareSavedMsg{path: path, err: err}
	}
}

// copyShareImage puts the card's data URI on the clipboard.
func (a *App) copyShareImage() tea.Cmd {
	image := a.state.ShareImage
	if image == "" {
		a.state.Elements.Get("share-status").SetError(errNoShareImage.Error())
		return nil
	}
	write := a.opts.Clipboard
	if write == nil {
		write = clipboard.WriteAll
	}
	return func() tea.Msg {
		return shareCopiedMsg{err: write(image)}
	}
}

type shareCopiedMsg struct{ err error }

func (a *App) handleShareSaved(msg shareSavedMsg) {
	status := a.state.Elements.Get("share-status")
	if msg.err != nil {
		log.Printf("tui: save share card: %v", msg.err)
		status.SetError("保存失败：" + msg.err.Error())
		return
	}
	status.SetText("已保存到 " + msg.path)
	status.Hidden = false
}

func (a *App) handleShareCopied(msg shareCopiedMsg) {
	status := a.state.Elements.Get("share-status")
	if msg.err != nil {
		log.Printf("tui: copy share card: %v", msg.err)
		status.SetError("复制失败，请改用保存")
		return
	}
	status.SetText("分享卡已复制到剪贴板")
	status.Hidden = false
}

// decodeDataURI splits a base64 data URI into its media type and payload.
func decodeDataURI(uri string) (mediaType string, data []byte, err error) {
	rest, ok := strings.CutPrefix(uri, "data:")
	if !ok {
		return "", nil, errors.New("not a data URI")
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, errors.New("data URI has no payload")
	}
	mediaType, isBase64 := strings.CutSuffix(meta, ";base64")
	if !isBase64 {
		return "", nil, fmt.Errorf("unsupported data URI encoding %q", meta)
	}
	data, err = base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("decode data URI: %w", err)
	}
	return mediaType, data, nil
}

// writeDataURI decodes uri and writes it to dir/name with an extension
// matching its media type.
func writeDataURI(dir, name, uri string) (string, error) {
	mediaType, data, err := decodeDataURI(uri)
	if err != nil {
		return "", err
	}
	ext := ".bin"
	switch mediaType {
	case "image/png":
		ext = ".png"
	case "image/jpeg":
		ext = ".jpg"
	case "image/svg+xml":
		ext = ".svg"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create share dir: %w", err)
	}
	path := filepath.Join(dir, name+ext)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write share card: %w", err)
	}
	return path, nil
}
