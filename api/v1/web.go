package v1

import "net/http"

// Web serves the interactive catalog page: an upload form, a search box
// and the video table, all driven by fetch calls against the API.
func Web() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		html := `
<!DOCTYPE html>
<html>
<head>
    <title>Video Catalog</title>
    <style>
        body {
            font-family: sans-serif;
            margin: 20px;
            display: flex;
            gap: 40px;
        }
        .form-group {
            margin-bottom: 10px;
        }
        .form-group label {
            display: block;
        }
        table {
            border-collapse: collapse;
        }
        th, td {
            border: 1px solid #ccc;
            padding: 4px 8px;
            text-align: left;
        }
    </style>
</head>
<body>
    <div>
        <h3>Upload</h3>
        <form id="uploadForm" onsubmit="uploadVideo(event)">
            <div class="form-group">
                <label for="title">Title</label>
                <input type="text" id="title" required>
            </div>
            <div class="form-group">
                <label for="description">Description</label>
                <input type="text" id="description">
            </div>
            <div class="form-group">
                <label for="uploader">Uploader</label>
                <input type="text" id="uploader" value="anonymous">
            </div>
            <div class="form-group">
                <label for="tags">Tags (comma separated)</label>
                <input type="text" id="tags">
            </div>
            <div class="form-group">
                <input type="submit" value="Upload">
            </div>
        </form>

        <h3>Search</h3>
        <input type="text" id="query">
        <button onclick="refresh(document.getElementById('query').value)">Search</button>
        <button onclick="refresh()">Reset</button>
    </div>

    <div>
        <h3>Videos</h3>
        <table>
            <thead>
                <tr><th>Id</th><th>Title</th><th>Uploader</th><th>Tags</th><th>Uploaded</th><th></th></tr>
            </thead>
            <tbody id="videos"></tbody>
        </table>
    </div>

    <script>
    function refresh(query) {
        const url = query ? '/api/v1/videos?q=' + encodeURIComponent(query) : '/api/v1/videos';
        fetch(url)
            .then(response => response.json())
            .then(videos => {
                const rows = videos.map(v =>
                    '<tr><td>' + v.id + '</td>' +
                    '<td>' + v.title + '</td>' +
                    '<td>' + v.uploader + '</td>' +
                    '<td>' + (v.tags.length ? v.tags.join(', ') : '-') + '</td>' +
                    '<td>' + v.uploaded_at + '</td>' +
                    '<td><button onclick="viewVideo(' + v.id + ')">View</button> ' +
                    '<button onclick="deleteVideo(' + v.id + ')">Delete</button></td></tr>');
                document.getElementById('videos').innerHTML = rows.join('');
            });
    }

    function uploadVideo(event) {
        event.preventDefault();
        const tags = document.getElementById('tags').value
            .split(',').map(t => t.trim()).filter(t => t.length > 0);
        fetch('/api/v1/videos', {
            method: 'POST',
            headers: {'Content-Type': 'application/json'},
            body: JSON.stringify({
                title: document.getElementById('title').value,
                description: document.getElementById('description').value,
                uploader: document.getElementById('uploader').value,
                tags: tags
            })
        })
        .then(response => {
            if (response.ok) {
                document.getElementById('uploadForm').reset();
                refresh();
            } else {
                response.json().then(e => alert(e.message));
            }
        });
    }

    function viewVideo(id) {
        fetch('/api/v1/videos/' + id)
            .then(response => response.json())
            .then(v => alert(JSON.stringify(v, null, 2)));
    }

    function deleteVideo(id) {
        if (!confirm('Delete video id=' + id + '?')) {
            return;
        }
        fetch('/api/v1/videos/' + id, {method: 'DELETE'}).then(() => refresh());
    }

    refresh();
    </script>
</body>
</html>`

		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(html))
	}
}
