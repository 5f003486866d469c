package sources

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/roemer/fwcatalog/pkg/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// A fake package registry with the given number of package versions, served in pages of 100.
// The first package has two files spread over two pages, all others one file.
func newGitLabTestServer(t *testing.T, packageCount int) *httptest.Server {
	const packagesPath = "/api/v4/projects/group/firmware/packages"
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		if page == 0 {
			page = 1
		}
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.URL.Path == packagesPath:
			assert.Equal(t, "panos", r.URL.Query().Get("package_name"))
			start := (page-1)*100 + 1
			end := min(page*100, packageCount)
			if end < packageCount {
				w.Header().Set("X-Next-Page", strconv.Itoa(page+1))
			}
			entries := []string{}
			for id := start; id <= end; id++ {
				entries = append(entries, fmt.Sprintf(`{"id": %d, "name": "panos", "version": "10.1.%d", "package_type": "generic"}`, id, id))
			}
			fmt.Fprintf(w, "[%s]", strings.Join(entries, ","))
		case strings.HasPrefix(r.URL.Path, packagesPath+"/") && strings.HasSuffix(r.URL.Path, "/package_files"):
			id, err := strconv.Atoi(strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, packagesPath+"/"), "/package_files"))
			require.NoError(t, err)
			if id == 1 && page == 1 {
				w.Header().Set("X-Next-Page", "2")
			}
			suffix := ""
			if page == 2 {
				suffix = "-b"
			}
			fmt.Fprintf(w, `[{"id": %d, "package_id": %d, "file_name": "PanOS_vm-10.1.%d%s", "file_sha256": "sha-%d%s"}]`, id*10+page, id, id, suffix, id, suffix)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)
	return server
}

func TestGitLabPackagesSourceFollowsPages(t *testing.T) {
	assert := assert.New(t)
	server := newGitLabTestServer(t, 150)

	source := NewGitLabPackagesSource(&common.SourceSettings{
		Id: "gitlab",
		GitLabPackagesSourceSettings: &common.GitLabPackagesSourceSettings{
			Url:         server.URL + "/api/v4",
			Project:     "group/firmware",
			PackageName: "panos",
		},
	})
	releases, err := source.GetReleases(context.Background())
	assert.NoError(err)
	// 150 package versions, the first one with two files
	assert.Len(releases, 151)
	assert.Equal(&common.RawRelease{VersionNumber: "10.1.1", FileName: "PanOS_vm-10.1.1", Sha256Checksum: "sha-1"}, releases[0])
	assert.Equal(&common.RawRelease{VersionNumber: "10.1.1", FileName: "PanOS_vm-10.1.1-b", Sha256Checksum: "sha-1-b"}, releases[1])
	assert.Equal(&common.RawRelease{VersionNumber: "10.1.150", FileName: "PanOS_vm-10.1.150", Sha256Checksum: "sha-150"}, releases[150])
}

func TestGitLabPackagesSourceWithPlatform(t *testing.T) {
	assert := assert.New(t)
	server := newGitLabTestServer(t, 3)

	source := NewGitLabPackagesSource(&common.SourceSettings{
		Id:              "gitlab",
		Platform:        "vm",
		FileNamePattern: `-b$`,
		GitLabPackagesSourceSettings: &common.GitLabPackagesSourceSettings{
			Url:         server.URL + "/api/v4/",
			Project:     "group/firmware",
			PackageName: "panos",
		},
	})
	releases, err := source.FetchReleases(context.Background())
	assert.NoError(err)
	assert.Equal([]*common.RawRelease{
		{Platform: "vm", VersionNumber: "10.1.1", FileName: "PanOS_vm-10.1.1-b", Sha256Checksum: "sha-1-b"},
	}, releases)
}

func TestGitLabPackagesSourceMissingSettings(t *testing.T) {
	assert := assert.New(t)

	_, err := NewGitLabPackagesSource(&common.SourceSettings{Id: "gitlab"}).GetReleases(context.Background())
	assert.ErrorContains(err, "no project or package name")

	_, err = NewGitLabPackagesSource(&common.SourceSettings{
		Id:                           "gitlab",
		GitLabPackagesSourceSettings: &common.GitLabPackagesSourceSettings{Project: "group/firmware"},
	}).GetReleases(context.Background())
	assert.ErrorContains(err, "no project or package name")
}

func TestGitLabPackagesSourceServerError(t *testing.T) {
	assert := assert.New(t)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		fmt.Fprint(w, `{"message": "403 Forbidden"}`)
	}))
	defer server.Close()

	source := NewGitLabPackagesSource(&common.SourceSettings{
		Id: "gitlab",
		GitLabPackagesSourceSettings: &common.GitLabPackagesSourceSettings{
			Url:         server.URL + "/api/v4",
			Project:     "group/firmware",
			PackageName: "panos",
		},
	})
	_, err := source.GetReleases(context.Background())
	assert.ErrorContains(err, "failed listing the packages of 'group/firmware'")
}
