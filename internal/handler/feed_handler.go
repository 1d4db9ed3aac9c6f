package handler

import (
	"encoding/xml"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/hitoshi/sanggunian/internal/announcement"
	"golang.org/x/net/html"
)

// excerptMaxRunes はRSSの説明文に載せる本文抜粋の最大文字数。
const excerptMaxRunes = 200

// FeedConfig はRSSフィード生成の設定。
type FeedConfig struct {
	SiteName string
	BaseURL  string
}

// FeedHandler は公開お知らせのRSS 2.0フィードを配信するHTTPハンドラー。
type FeedHandler struct {
	service PublicAnnouncementService
	config  FeedConfig
}

// NewFeedHandler はFeedHandlerを生成する。
func NewFeedHandler(service PublicAnnouncementService, config FeedConfig) *FeedHandler {
	return &FeedHandler{service: service, config: config}
}

type rssFeed struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title       string    `xml:"title"`
	Link        string    `xml:"link"`
	Description string    `xml:"description"`
	Items       []rssItem `xml:"item"`
}

type rssItem struct {
	Title       string  `xml:"title"`
	Link        string  `xml:"link"`
	Description string  `xml:"description"`
	Category    string  `xml:"category"`
	PubDate     string  `xml:"pubDate"`
	GUID        rssGUID `xml:"guid"`
}

type rssGUID struct {
	Value       string `xml:",chardata"`
	IsPermaLink string `xml:"isPermaLink,attr"`
}

// Feed は公開中のお知らせをRSS 2.0として返す。本文はHTMLを落とした抜粋にする。
// GET /api/public/announcements/feed
func (h *FeedHandler) Feed(w http.ResponseWriter, r *http.Request) {
	announcements, err := h.service.ListPublished(r.Context(), announcement.Filter{})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	feed := rssFeed{
		Version: "2.0",
		Channel: rssChannel{
			Title:       h.config.SiteName,
			Link:        h.config.BaseURL,
			Description: h.config.SiteName + " - お知らせ",
			Items:       make([]rssItem, 0, len(announcements)),
		},
	}

	for _, a := range announcements {
		feed.Channel.Items = append(feed.Channel.Items, rssItem{
			Title:       a.Title,
			Link:        fmt.Sprintf("%s/announcements/%s", h.config.BaseURL, a.ID),
			Description: htmlExcerpt(a.Content, excerptMaxRunes),
			Category:    string(a.Category),
			PubDate:     a.PublishDate.Format("Mon, 02 Jan 2006 15:04:05 -0700"),
			GUID:        rssGUID{Value: a.ID, IsPermaLink: "false"},
		})
	}

	w.Header().Set("Content-Type", "application/rss+xml; charset=utf-8")
	w.Write([]byte(xml.Header))
	if err := xml.NewEncoder(w).Encode(feed); err != nil {
		slog.Error("failed to encode rss feed", slog.String("error", err.Error()))
	}
}

// htmlExcerpt はHTML文字列からテキストノードのみを抽出し、maxRunes文字に切り詰める。
func htmlExcerpt(content string, maxRunes int) string {
	node, err := html.Parse(strings.NewReader(content))
	if err != nil {
		// 解析できない場合はタグを含んだまま切り詰めるよりも空を返す
		return ""
	}

	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		// scriptやstyleの中身はテキストノードだが本文ではない
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
			return
		}
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(node)

	text := strings.Join(strings.Fields(sb.String()), " ")
	runes := []rune(text)
	if len(runes) > maxRunes {
		return string(runes[:maxRunes]) + "..."
	}
	return text
}
