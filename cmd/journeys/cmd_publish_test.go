package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/spboyer/journeys/internal/publish"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func stubBlobClient(t *testing.T, client publish.BlobClient, err error) {
	t.Helper()
	old := newBlobClient
	newBlobClient = func(string) (publish.BlobClient, error) { return client, err }
	t.Cleanup(func() { newBlobClient = old })
}

func executePublish(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newPublishCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestPublishCommand(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "A-chromium"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "A-chromium", "trace.zip"), []byte("zip"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "journeys.json"), []byte("[]"), 0o644))

	ctrl := gomock.NewController(t)
	client := publish.NewMockBlobClient(ctrl)
	gomock.InOrder(
		client.EXPECT().UploadFile(gomock.Any(), "runs", "nightly/A-chromium/trace.zip", gomock.Any(), gomock.Any()).
			Return(azblob.UploadFileResponse{}, nil),
		client.EXPECT().UploadFile(gomock.Any(), "runs", "nightly/journeys.json", gomock.Any(), gomock.Any()).
			Return(azblob.UploadFileResponse{}, nil),
	)
	stubBlobClient(t, client, nil)

	out, err := executePublish(t, root,
		"--account-url", "https://acct.blob.core.windows.net",
		"--container", "runs",
		"--prefix", "nightly")
	require.NoError(t, err)
	assert.Contains(t, out, "uploaded nightly/A-chromium/trace.zip\nuploaded nightly/journeys.json\n")
	assert.Contains(t, out, "Published 2 file(s) to https://acct.blob.core.windows.net/runs")
}

func TestPublishCommand_RequiredFlags(t *testing.T) {
	_, err := executePublish(t, t.TempDir(), "--container", "runs")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--account-url")

	_, err = executePublish(t, t.TempDir(), "--account-url", "https://acct.blob.core.windows.net")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--container")
}

func TestPublishCommand_ClientError(t *testing.T) {
	stubBlobClient(t, nil, errors.New("no credentials"))
	_, err := executePublish(t, t.TempDir(), "--account-url", "https://x", "--container", "runs")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no credentials")
}
