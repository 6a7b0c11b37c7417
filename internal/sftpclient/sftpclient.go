package sftpclient

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/pkg/sftp"
	"golang.org/x/crypto/ssh"
)

type Config struct {
	Host                  string
	Port                  int
	User                  string
	Pass                  string
	RemoteDir             string
	InsecureIgnoreHostKey bool
}

func (cfg *Config) applyDefaults() error {
	if cfg.Host == "" || cfg.User == "" || cfg.Pass == "" {
		return fmt.Errorf("sftp: missing env SFTP_HOST / SFTP_USER / SFTP_PASS")
	}
	if cfg.Port <= 0 {
		cfg.Port = 22
	}
	if cfg.RemoteDir == "" {
		cfg.RemoteDir = "/"
	}
	return nil
}

// connect dials SSH (bounded by ctx) and opens an SFTP session on top.
func connect(ctx context.Context, cfg Config) (*ssh.Client, *sftp.Client, error) {
	cb := ssh.InsecureIgnoreHostKey()
	if !cfg.InsecureIgnoreHostKey {
		// TODO: replace with a known_hosts callback once the drop host
		// publishes a stable key.
		cb = ssh.InsecureIgnoreHostKey()
	}

	sshCfg := &ssh.ClientConfig{
		User:            cfg.User,
		Auth:            []ssh.AuthMethod{ssh.Password(cfg.Pass)},
		HostKeyCallback: cb,
		Timeout:         20 * time.Second,
	}

	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)

	type dialRes struct {
		client *ssh.Client
		err    error
	}
	ch := make(chan dialRes, 1)
	go func() {
		c, err := ssh.Dial("tcp", addr, sshCfg)
		ch <- dialRes{client: c, err: err}
	}()

	var sshClient *ssh.Client
	select {
	case <-ctx.Done():
		return nil, nil, fmt.Errorf("sftp: dial canceled: %w", ctx.Err())
	case r := <-ch:
		if r.err != nil {
			return nil, nil, fmt.Errorf("sftp: dial error: %w", r.err)
		}
		sshClient = r.client
	}

	sftpCli, err := sftp.NewClient(sshClient)
	if err != nil {
		sshClient.Close()
		return nil, nil, fmt.Errorf("sftp: new client: %w", err)
	}
	return sshClient, sftpCli, nil
}

// DownloadFile fetches RemoteDir/remoteFileName into localPath, creating the
// local parent directory if needed.
func DownloadFile(ctx context.Context, cfg Config, remoteFileName, localPath string) error {
	if err := cfg.applyDefaults(); err != nil {
		return err
	}

	sshClient, sftpCli, err := connect(ctx, cfg)
	if err != nil {
		return err
	}
	defer sshClient.Close()
	defer sftpCli.Close()

	remotePath := path.Join(cfg.RemoteDir, remoteFileName)
	src, err := sftpCli.Open(remotePath)
	if err != nil {
		return fmt.Errorf("sftp: open remote file %s: %w", remotePath, err)
	}
	defer src.Close()

	if dir := filepath.Dir(localPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("sftp: mkdir local %s: %w", dir, err)
		}
	}

	dst, err := os.Create(localPath)
	if err != nil {
		return fmt.Errorf("sftp: create local file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return fmt.Errorf("sftp: download copy: %w", err)
	}
	return nil
}

// UploadFile pushes localPath to RemoteDir/remoteFileName, creating the
// remote directory if needed.
func UploadFile(ctx context.Context, cfg Config, localPath, remoteFileName string) error {
	if err := cfg.applyDefaults(); err != nil {
		return err
	}

	sshClient, sftpCli, err := connect(ctx, cfg)
	if err != nil {
		return err
	}
	defer sshClient.Close()
	defer sftpCli.Close()

	if err := sftpCli.MkdirAll(cfg.RemoteDir); err != nil {
		return fmt.Errorf("sftp: mkdir %s: %w", cfg.RemoteDir, err)
	}

	src, err := os.Open(localPath)
	if err != nil {
		return fmt.Errorf("sftp: open local file: %w", err)
	}
	defer src.Close()

	remotePath := path.Join(cfg.RemoteDir, remoteFileName)
	dst, err := sftpCli.Create(remotePath)
	if err != nil {
		return fmt.Errorf("sftp: create remote file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return fmt.Errorf("sftp: upload copy: %w", err)
	}
	return nil
}
