/*
 * Copyright 2025 tomoncle.
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package types

import (
	"net/url"
	"strconv"
)

// PageRequest describes pagination intent: which page, how many rows per
// page, and optional extra query parameters carried into generated page
// links.
type PageRequest struct {
	page       int
	pageSize   int
	linkParams map[string]string
}

func (p *PageRequest) GetPageSize() int {
	if p.pageSize < 1 {
		p.pageSize = 10
	}
	return p.pageSize
}

func (p *PageRequest) GetPage() int {
	if p.page < 1 {
		p.page = 1
	}
	return p.page
}

func (p *PageRequest) GetOffset() int {
	return (p.GetPage() - 1) * p.GetPageSize()
}

func (p *PageRequest) GetLinkParams() map[string]string {
	return p.linkParams
}

// NewPageRequest constructs a PageRequest for the given page and page size.
func NewPageRequest(page int, pageSize int) *PageRequest {
	return &PageRequest{page, pageSize, nil}
}

// NewPageRequestWithParams constructs a PageRequest whose generated page
// links carry the given extra query parameters.
func NewPageRequestWithParams(page int, pageSize int, params map[string]string) *PageRequest {
	return &PageRequest{page, pageSize, params}
}

// PageMeta holds pagination metadata for a materialized page of results.
// NextLink and PrevLink are query strings ("?page=N&...") and are empty when
// there is no adjacent page.
type PageMeta struct {
	Page      int    `json:"page"`
	PageSize  int    `json:"page_size"`
	Total     int    `json:"total"`
	PageCount int    `json:"page_count"`
	NextLink  string `json:"next_link,omitempty"`
	PrevLink  string `json:"prev_link,omitempty"`
}

// NewPageMeta builds pagination metadata from a request and a total row
// count, generating adjacent page links.
func NewPageMeta(request *PageRequest, total int) *PageMeta {
	page := request.GetPage()
	pageSize := request.GetPageSize()
	pageCount := (total + pageSize - 1) / pageSize

	meta := &PageMeta{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		PageCount: pageCount,
	}
	if page < pageCount {
		meta.NextLink = pageLink(page+1, request.GetLinkParams())
	}
	if page > 1 {
		meta.PrevLink = pageLink(page-1, request.GetLinkParams())
	}
	return meta
}

func pageLink(page int, params map[string]string) string {
	values := url.Values{}
	values.Set("page", strconv.Itoa(page))
	for k, v := range params {
		values.Set(k, v)
	}
	return "?" + values.Encode()
}
