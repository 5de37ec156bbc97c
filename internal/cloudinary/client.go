// Package cloudinary реализует клиент хостинга фотографий Cloudinary:
// загрузку файла с подписанным запросом, удаление и построение URL.
//
// Фото пользователя хранится под детерминированным public_id
// diia_photos/user_<id>, поэтому повторная загрузка перезаписывает
// прежний файл, а не накапливает копии.
package cloudinary

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/diiateam/diia-backend/internal/lib/sl"
)

const photoFolder = "diia_photos"

// Client — клиент REST API Cloudinary.
type Client struct {
	cloudName  string
	apiKey     string
	apiSecret  string
	apiURL     string
	httpClient *http.Client
	log        *slog.Logger
}

// New создаёт новый клиент Cloudinary.
func New(cloudName, apiKey, apiSecret string, log *slog.Logger) *Client {
	return &Client{
		cloudName:  cloudName,
		apiKey:     apiKey,
		apiSecret:  apiSecret,
		apiURL:     "https://api.cloudinary.com/v1_1",
		httpClient: &http.Client{Timeout: 30 * time.Second},
		log:        log,
	}
}

type uploadResponse struct {
	SecureURL string `json:"secure_url"`
	URL       string `json:"url"`
}

// Upload загружает локальный файл и возвращает постоянный URL.
// Ошибки транспорта не ретраятся и передаются вызывающей стороне:
// регистрация без фото завершаться не должна.
func (c *Client) Upload(ctx context.Context, filePath string, userID int64) (string, error) {
	const op = "cloudinary.Upload"

	file, err := os.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = file.Close()
	}()

	params := map[string]string{
		"folder":    photoFolder,
		"public_id": fmt.Sprintf("user_%d", userID),
		"overwrite": "true",
		"timestamp": strconv.FormatInt(time.Now().Unix(), 10),
	}

	var body strings.Builder
	writer := multipart.NewWriter(&body)
	for key, value := range params {
		if err := writer.WriteField(key, value); err != nil {
			return "", fmt.Errorf("%s: %w", op, err)
		}
	}
	if err := writer.WriteField("api_key", c.apiKey); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if err := writer.WriteField("signature", c.sign(params)); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	part, err := writer.CreateFormFile("file", "photo.jpg")
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	endpoint := fmt.Sprintf("%s/%s/image/upload", c.apiURL, c.cloudName)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(body.String()))
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%s: unexpected status %s", op, resp.Status)
	}

	var uploaded uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&uploaded); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if uploaded.SecureURL != "" {
		return uploaded.SecureURL, nil
	}
	if uploaded.URL != "" {
		return uploaded.URL, nil
	}
	return "", fmt.Errorf("%s: %w", op, errors.New("empty upload response"))
}

// Delete удаляет фото пользователя. Работает по принципу best effort:
// ошибка логируется и не передаётся дальше, чтобы не блокировать поток,
// которому удаление не критично.
func (c *Client) Delete(ctx context.Context, userID int64) {
	const op = "cloudinary.Delete"

	params := map[string]string{
		"public_id": fmt.Sprintf("%s/user_%d", photoFolder, userID),
		"timestamp": strconv.FormatInt(time.Now().Unix(), 10),
	}

	form := url.Values{}
	for key, value := range params {
		form.Set(key, value)
	}
	form.Set("api_key", c.apiKey)
	form.Set("signature", c.sign(params))

	endpoint := fmt.Sprintf("%s/%s/image/destroy", c.apiURL, c.cloudName)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		c.log.Warn("failed to build destroy request", sl.Err(err))
		return
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warn("failed to delete photo", slog.Int64("user_id", userID), sl.Err(err))
		return
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode != http.StatusOK {
		c.log.Warn("unexpected status on photo delete",
			slog.Int64("user_id", userID), slog.String("status", resp.Status))
	}
}

// PhotoURL строит URL фото пользователя без обращения к API.
// Используется, когда вызывающая сторона уверена, что файл существует.
func (c *Client) PhotoURL(userID int64) string {
	return fmt.Sprintf("https://res.cloudinary.com/%s/image/upload/%s/user_%d",
		c.cloudName, photoFolder, userID)
}

// sign считает подпись запроса: SHA-1 от параметров, отсортированных
// по ключу и сцепленных в query-строку, с добавленным api_secret.
func (c *Client) sign(params map[string]string) string {
	keys := make([]string, 0, len(params))
	for key := range params {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, key := range keys {
		pairs = append(pairs, key+"="+params[key])
	}
	sum := sha1.Sum([]byte(strings.Join(pairs, "&") + c.apiSecret))
	return hex.EncodeToString(sum[:])
}
