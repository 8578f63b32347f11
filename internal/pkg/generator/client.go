package generator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/docassembler/backend/config"
	"github.com/docassembler/backend/internal/session"
	"k8s.io/klog/v2"
)

// Client 文档生成服务客户端
// 生成算法完全由外部服务实现，这里只负责一次 request/response 提交
type Client struct {
	BaseURL string
	Client  *http.Client
}

// NewClient 创建文档生成服务客户端
func NewClient(cfg *config.Config) *Client {
	return &Client{
		BaseURL: cfg.Generator.APIURL,
		Client: &http.Client{
			Timeout: cfg.Generator.Timeout,
		},
	}
}

// Request 提交给生成服务的请求体
// 映射表铺平为列表，附带分节顺序
type Request struct {
	TemplateID   uint                 `json:"template_id"`
	TemplateName string               `json:"template_name"`
	Mappings     []session.TagMapping `json:"mappings"`
	SectionOrder []uint               `json:"section_order"`
}

// Response 生成服务的响应体
type Response struct {
	DocumentURL string `json:"document_url"`
	Error       string `json:"error,omitempty"`
}

// Generate 提交生成请求并等待结果
func (c *Client) Generate(ctx context.Context, req Request) (*Response, error) {
	klog.V(6).Infof("提交生成请求: template=%d, mappings=%d", req.TemplateID, len(req.Mappings))

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/v1/documents", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := c.Client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("generator request failed: %w", err)
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if httpResp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("generator returned status %d: %s", httpResp.StatusCode, string(respBody))
	}

	var resp Response
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}
	if resp.Error != "" {
		return nil, fmt.Errorf("generator error: %s", resp.Error)
	}
	return &resp, nil
}
