package main

import (
	"context"
	"flag"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"course-report/internal/config"
	"course-report/internal/export"
	"course-report/internal/ingest"
	"course-report/internal/report"
	"course-report/internal/sftpclient"
)

// Historical location of the certifications export, relative to the deployed
// binary.
const defaultInputRel = "server/knowledge/certifications/complete_courses.csv"

func main() {
	var (
		inputFlag  = flag.String("input", "", "input csv path or http(s) url (default $COURSE_REPORT_INPUT, else the certifications export next to the binary)")
		outPath    = flag.String("out", "", "also write the per-company summary csv to this path")
		fetchSFTP  = flag.Bool("fetch-sftp", false, "download the input csv from the sftp drop before reporting")
		uploadSFTP = flag.Bool("upload-sftp", false, "upload the -out summary csv to the sftp drop")
	)
	flag.Parse()

	rootCtx, rootCancel := context.WithTimeout(context.Background(), 15*time.Minute)
	defer rootCancel()

	cfg := config.Load()

	source := resolveInput(*inputFlag, cfg.InputPath)

	sftpCfg := sftpclient.Config{
		Host:                  cfg.SFTPHost,
		Port:                  cfg.SFTPPort,
		User:                  cfg.SFTPUser,
		Pass:                  cfg.SFTPPass,
		RemoteDir:             cfg.SFTPDir,
		InsecureIgnoreHostKey: cfg.SFTPInsecureIgnoreHostKey,
	}

	if *fetchSFTP {
		if ingest.IsURL(source) {
			log.Fatal("cannot combine -fetch-sftp with a url input")
		}

		ctx, cancel := context.WithTimeout(rootCtx, 5*time.Minute)
		defer cancel()

		remoteName := filepath.Base(source)
		if err := sftpclient.DownloadFile(ctx, sftpCfg, remoteName, source); err != nil {
			log.Fatal(err)
		}
		log.Printf("fetched sftp://%s:%d%s/%s -> %s", sftpCfg.Host, sftpCfg.Port, sftpCfg.RemoteDir, remoteName, source)
	}

	records, err := ingest.Load(rootCtx, source)
	if err != nil {
		log.Fatal(err)
	}

	rows := report.Summarize(records)

	if err := report.Render(os.Stdout, source, rows); err != nil {
		log.Fatal(err)
	}

	if *uploadSFTP && *outPath == "" {
		log.Fatal("-upload-sftp requires -out")
	}

	if *outPath != "" {
		if dir := filepath.Dir(*outPath); dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				log.Fatal(err)
			}
		}

		f, err := os.Create(*outPath)
		if err != nil {
			log.Fatal(err)
		}
		if err := export.WriteCompanySummary(f, rows); err != nil {
			f.Close()
			log.Fatal(err)
		}
		if err := f.Close(); err != nil {
			log.Fatal(err)
		}
		log.Printf("wrote %d companies to %s", len(rows), *outPath)

		if *uploadSFTP {
			ctx, cancel := context.WithTimeout(rootCtx, 5*time.Minute)
			defer cancel()

			remoteName := filepath.Base(*outPath)
			if err := sftpclient.UploadFile(ctx, sftpCfg, *outPath, remoteName); err != nil {
				log.Fatal(err)
			}
			log.Printf("uploaded to sftp://%s:%d%s/%s", sftpCfg.Host, sftpCfg.Port, sftpCfg.RemoteDir, remoteName)
		}
	}
}

// resolveInput picks the input source: -input flag first, then
// $COURSE_REPORT_INPUT, then the historical path resolved against the
// directory the binary lives in.
func resolveInput(flagVal, envVal string) string {
	if v := strings.TrimSpace(flagVal); v != "" {
		return v
	}
	if v := strings.TrimSpace(envVal); v != "" {
		return v
	}
	exe, err := os.Executable()
	if err != nil {
		return defaultInputRel
	}
	return filepath.Join(filepath.Dir(exe), defaultInputRel)
}
