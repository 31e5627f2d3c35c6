package jenkins

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cavaliercoder/grab"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/sirupsen/logrus"

	"github.com/glasswalk3r/jenkins-jobs/common"
	"github.com/glasswalk3r/jenkins-jobs/logging"
)

const (
	// Maximum retries for a request to Jenkins.
	// Retries on transport failures and 5XX.
	maxRetries = 5
	// Backoff delay used after a request retry.
	// Doubles on every retry up to maxRetryDelay.
	retryDelay    = 100 * time.Millisecond
	maxRetryDelay = 5 * time.Second

	requestTimeout = 30 * time.Second

	handlerJobs   = "jobs"
	handlerConfig = "config"
)

// JenkinsAPIClient reads job information from a Jenkins server. It never
// changes anything on the server.
type JenkinsAPIClient struct {
	http    *retryablehttp.Client
	grab    *grab.Client
	baseUrl string
	user    string
	token   string
	log     *logrus.Entry
	metrics *ClientMetrics
}

// New creates a client for the Jenkins server at baseUrl. The address must
// carry an http or https scheme.
func New(baseUrl string) (*JenkinsAPIClient, error) {
	if !hasScheme(baseUrl) {
		return nil, &SchemaMissingError{URL: baseUrl}
	}
	httpClient := &http.Client{Timeout: requestTimeout}
	j := &JenkinsAPIClient{
		http: retryablehttp.NewClient(),
		grab: grab.NewClient(),
		log:  logging.GetLogger().For("jenkins"),
	}
	j.http.HTTPClient = httpClient
	j.http.RetryMax = maxRetries
	j.http.RetryWaitMin = retryDelay
	j.http.RetryWaitMax = maxRetryDelay
	j.http.Logger = &logging.RetryableLogger{Log: j.log}
	j.http.ErrorHandler = retryablehttp.PassthroughErrorHandler
	j.http.RequestLogHook = func(_ retryablehttp.Logger, _ *http.Request, attempt int) {
		if attempt > 0 && j.metrics != nil {
			j.metrics.RequestRetries.Inc()
		}
	}
	j.grab.HTTPClient = httpClient
	return j.SetBaseUrl(baseUrl), nil
}

func hasScheme(rawUrl string) bool {
	u, err := url.Parse(rawUrl)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

func (j *JenkinsAPIClient) SetUser(user string) *JenkinsAPIClient {
	j.log.Debug("setting username to " + user)
	j.user = user
	return j
}

// SetToken sets the API token used as the basic auth password.
func (j *JenkinsAPIClient) SetToken(token string) *JenkinsAPIClient {
	j.log.Debug("set API token")
	j.token = token
	return j
}

func (j *JenkinsAPIClient) SetBaseUrl(baseUrl string) *JenkinsAPIClient {
	j.log.Debug("set base URL to " + baseUrl)
	j.baseUrl = strings.TrimRight(baseUrl, "/")
	return j
}

func (j *JenkinsAPIClient) GetBaseUrl() string {
	return j.baseUrl
}

// SetMetrics enables request metrics.
func (j *JenkinsAPIClient) SetMetrics(m *ClientMetrics) *JenkinsAPIClient {
	j.metrics = m
	return j
}

// SetInsecure skips TLS certificate verification, for servers with self
// signed certificates.
func (j *JenkinsAPIClient) SetInsecure(insecure bool) *JenkinsAPIClient {
	if insecure {
		j.log.Warn("TLS certificate verification disabled")
		j.http.HTTPClient.Transport = &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		}
	} else {
		j.http.HTTPClient.Transport = nil
	}
	return j
}

// SetRetries changes how many times and how fast failed requests are retried.
func (j *JenkinsAPIClient) SetRetries(max int, wait time.Duration) *JenkinsAPIClient {
	j.http.RetryMax = max
	j.http.RetryWaitMin = wait
	if j.http.RetryWaitMax < wait {
		j.http.RetryWaitMax = wait
	}
	return j
}

func (j *JenkinsAPIClient) cleanUrl(urlPath string) string {
	urlPath = strings.TrimRight(urlPath, "/")
	urlPath = strings.ReplaceAll(urlPath, j.baseUrl, "")
	return j.baseUrl + urlPath
}

// jobPath maps a full job name to its URL path. Jobs inside folders are
// named folder/job and live under /job/folder/job/job.
func jobPath(name string) string {
	var b strings.Builder
	for _, segment := range strings.Split(strings.Trim(name, "/"), "/") {
		b.WriteString("/job/")
		b.WriteString(url.PathEscape(segment))
	}
	return b.String()
}

func (j *JenkinsAPIClient) measure(method, handler string, code int, start time.Time) {
	if j.metrics == nil {
		return
	}
	j.metrics.RequestLatency.WithLabelValues(method, handler).Observe(time.Since(start).Seconds())
	j.metrics.Requests.WithLabelValues(method, handler, fmt.Sprintf("%d", code)).Inc()
}

// get fetches urlPath, retrying on transport failures and 5XX.
func (j *JenkinsAPIClient) get(ctx context.Context, urlPath string, params url.Values, handler string) ([]byte, error) {
	u := j.cleanUrl(urlPath)
	if params != nil {
		u = u + "?" + params.Encode()
	}
	j.log.WithField("url", u).Debug("GETing")
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, newJenkinsError("Request to "+u+" could not be built", err)
	}
	req.SetBasicAuth(j.user, j.token)
	start := time.Now()
	resp, err := j.http.Do(req)
	if err != nil {
		if resp != nil {
			resp.Body.Close()
		}
		return nil, newJenkinsError("Request to "+u+" failed", err)
	}
	j.measure(http.MethodGet, handler, resp.StatusCode, start)
	return readResp(u, resp)
}

func readResp(u string, resp *http.Response) ([]byte, error) {
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, &NotFoundError{URL: u}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("response not 2XX: %s", resp.Status)
	}
	return io.ReadAll(resp.Body)
}

func (j *JenkinsAPIClient) getJson(ctx context.Context, urlPath string, params url.Values, v interface{}) error {
	body, err := j.get(ctx, urlPath+"/api/json", params, handlerJobs)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		return newJenkinsError("Unexpected response from "+j.cleanUrl(urlPath), err)
	}
	return nil
}

// ListJobs returns the jobs at the top level of the server. Folders up to
// folderDepth levels deep are descended into, their jobs are named
// folder/job; 0 lists the top level only.
func (j *JenkinsAPIClient) ListJobs(ctx context.Context, folderDepth int) ([]JobSummary, error) {
	return j.listJobs(ctx, "", folderDepth)
}

func (j *JenkinsAPIClient) listJobs(ctx context.Context, folder string, depth int) ([]JobSummary, error) {
	urlPath := ""
	if folder != "" {
		urlPath = jobPath(folder)
	}
	params := url.Values{"tree": []string{"jobs[_class,name,url,color]"}}
	var list jobList
	if err := j.getJson(ctx, urlPath, params, &list); err != nil {
		return nil, err
	}
	result := make([]JobSummary, 0, len(list.Jobs))
	for _, job := range list.Jobs {
		if folder != "" {
			job.Name = folder + "/" + job.Name
		}
		result = append(result, job)
		if job.IsFolder() && depth > 0 {
			children, err := j.listJobs(ctx, job.Name, depth-1)
			if err != nil {
				return nil, err
			}
			result = append(result, children...)
		}
	}
	j.log.WithField("folder", folder).Debugf("found %d jobs", len(result))
	return result, nil
}

// GetJobConfig returns the config.xml of a job.
func (j *JenkinsAPIClient) GetJobConfig(ctx context.Context, name string) ([]byte, error) {
	body, err := j.get(ctx, jobPath(name)+"/config.xml", nil, handlerConfig)
	if err != nil {
		return nil, newJenkinsError("Could not get the configuration of "+name, err)
	}
	return body, nil
}

// DownloadJobConfig saves the config.xml of a job into destDir and returns
// the path of the file written.
func (j *JenkinsAPIClient) DownloadJobConfig(ctx context.Context, name string, destDir string) (string, error) {
	u := j.cleanUrl(jobPath(name) + "/config.xml")
	filePath := filepath.Join(destDir, common.FileName(name)+".xml")
	if err := os.MkdirAll(destDir, 0700); err != nil {
		return "", newJenkinsError("Could not create "+destDir, err)
	}
	j.log.Debug("Download starting: " + u)
	grabReq, err := grab.NewRequest(filePath, u)
	if err != nil {
		return "", newJenkinsError("Download failed: "+u, err)
	}
	grabReq = grabReq.WithContext(ctx)
	// configs change between exports, never resume a previous file
	grabReq.NoResume = true
	grabReq.HTTPRequest.SetBasicAuth(j.user, j.token)
	start := time.Now()
	resp := j.grab.Do(grabReq)
	<-resp.Done
	if resp.HTTPResponse != nil {
		j.measure(http.MethodGet, handlerConfig, resp.HTTPResponse.StatusCode, start)
	}
	if err := resp.Err(); err != nil {
		err = newJenkinsError("Download failed: "+u, err)
		j.log.Error(err.Error())
		return "", err
	}
	j.log.Debug("Download complete: " + u)
	return resp.Filename, nil
}
