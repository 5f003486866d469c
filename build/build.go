package main

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/roemer/gotaskr"
	"github.com/roemer/gotaskr/execr"
)

// Internal variables
var outputDirectory = ".build-output"
var version = "0.1.0"
var mainPackage = "./cmd/fwcatalog"

type target struct {
	goos   string
	goarch string
	ext    string
}

var targets = map[string]target{
	"Windows":  {goos: "windows", goarch: "amd64", ext: ".exe"},
	"Linux":    {goos: "linux", goarch: "amd64"},
	"LinuxArm": {goos: "linux", goarch: "arm64"},
	"Mac":      {goos: "darwin", goarch: "amd64"},
	"MacArm":   {goos: "darwin", goarch: "arm64"},
}

func main() {
	os.Exit(gotaskr.Execute())
}

func init() {
	gotaskr.Task("Test", func() error {
		return execr.Run(true, "go", "test", "./...")
	})

	for name, t := range targets {
		gotaskr.Task("Compile:"+name, func() error {
			os.Setenv("GOOS", t.goos)
			os.Setenv("GOARCH", t.goarch)
			os.Setenv("CGO_ENABLED", "0")

			path, err := compile(t)
			if err != nil {
				return err
			}
			return zipRelease(path)
		})
	}
}

func compile(t target) (string, error) {
	outputFile := filepath.Join(outputDirectory, t.goos+"-"+t.goarch, "fwcatalog"+t.ext)
	return outputFile, execr.Run(true, "go", "build", "-ldflags", "-X github.com/roemer/fwcatalog/internal/app/fwcatalog.Version="+version, "-o", outputFile, mainPackage)
}

func zipRelease(file string) error {
	zipFilePath := filepath.Join(outputDirectory, fmt.Sprintf("fwcatalog-%s-%s-%s.zip", os.Getenv("GOOS"), version, os.Getenv("GOARCH")))

	a, err := os.Create(zipFilePath)
	if err != nil {
		return err
	}
	defer a.Close()

	return createFlatZip(a, file)
}

func createFlatZip(w io.Writer, files ...string) error {
	z := zip.NewWriter(w)
	for _, file := range files {
		if err := addZipFile(z, file); err != nil {
			return err
		}
	}
	return z.Close()
}

func addZipFile(z *zip.Writer, file string) error {
	src, err := os.Open(file)
	if err != nil {
		return err
	}
	defer src.Close()
	info, err := src.Stat()
	if err != nil {
		return err
	}
	hdr, err := zip.FileInfoHeader(info)
	if err != nil {
		return err
	}
	// Only the base name goes into the archive
	hdr.Name = filepath.Base(file)
	hdr.Method = zip.Deflate
	dst, err := z.CreateHeader(hdr)
	if err != nil {
		return err
	}
	_, err = io.Copy(dst, src)
	return err
}
