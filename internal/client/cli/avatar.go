package cli

import (
	"context"
	"fmt"
	"os"
)

// setAvatar walks the three-step avatar flow: ask the server for a
// presigned upload URL, PUT the file to storage, then attach the key to
// the profile.
func (a *App) setAvatar(ctx context.Context, path string) {
	if !a.requireSession() {
		return
	}

	if path == "" {
		var err error
		path, err = getSimpleText(a.reader, "Path to image file", os.Stdout)
		if err != nil {
			fmt.Println("Error:", err)
			return
		}
	}

	f, err := os.Open(path)
	if err != nil {
		fmt.Println("Cannot open file:", err)
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		fmt.Println("Cannot stat file:", err)
		return
	}

	key, url, err := a.client.AvatarUploadURL(ctx)
	if err != nil {
		printAPIError(err)
		return
	}

	if err := a.client.UploadAvatar(ctx, url, f, info.Size()); err != nil {
		printAPIError(err)
		return
	}

	user, err := a.client.AttachAvatar(ctx, key)
	if err != nil {
		printAPIError(err)
		return
	}

	a.rememberUser(user)
	fmt.Println("Avatar updated.")
}

func (a *App) avatarURL(ctx context.Context) {
	if !a.requireSession() {
		return
	}

	url, err := a.client.AvatarURL(ctx)
	if err != nil {
		printAPIError(err)
		return
	}
	fmt.Println(url)
}
